package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sameer280406/Projects/internal/dashboard"
	"github.com/Sameer280406/Projects/internal/models"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// blockingUploader answers every upload once release is closed.
type blockingUploader struct {
	release chan struct{}
}

func (u *blockingUploader) Upload(ctx context.Context, fileName string, data []byte) (*models.Summary, error) {
	<-u.release
	return &models.Summary{Total: models.Float(1)}, nil
}

// newTestManager returns a manager with a controllable clock.
func newTestManager(t *testing.T, maxSessions int) (*Manager, *blockingUploader, *time.Time) {
	t.Helper()
	up := &blockingUploader{release: make(chan struct{})}
	t.Cleanup(func() {
		select {
		case <-up.release:
		default:
			close(up.release)
		}
	})

	m := NewManager(func() *dashboard.Dashboard {
		return dashboard.New(up, dashboard.WithLogger(nopLogger{}))
	}, maxSessions)
	m.SetLogger(nopLogger{})

	clock := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, up, &clock
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not finish")
	}
}

func TestManager_CreateAndGet(t *testing.T) {
	m, _, _ := newTestManager(t, 0)

	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Dashboard, b.Dashboard)
	assert.Equal(t, 2, m.Count())

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m, up, _ := newTestManager(t, 0)

	first := m.Create()
	done := first.Dashboard.HandleFileSelected("a.csv", []byte("x"))
	close(up.release)
	waitDone(t, done)
	require.Equal(t, dashboard.PhaseLoaded, first.Dashboard.View().Phase)

	// A new page starts from nothing, whatever other pages did.
	fresh := m.Create()
	v := fresh.Dashboard.View()
	assert.Equal(t, dashboard.PhaseIdle, v.Phase)
	assert.Empty(t, v.FileName)
	assert.False(t, v.HasSummary())
}

func TestManager_CleanupOldSessions(t *testing.T) {
	m, _, clock := newTestManager(t, 0)

	old := m.Create()
	*clock = clock.Add(20 * time.Minute)
	recent := m.Create()
	*clock = clock.Add(15 * time.Minute)

	removed := m.CleanupOldSessions(SessionMaxAge)
	assert.Equal(t, 1, removed)

	_, ok := m.Get(old.ID)
	assert.False(t, ok)
	_, ok = m.Get(recent.ID)
	assert.True(t, ok)
}

func TestManager_CleanupKeepsActiveSessions(t *testing.T) {
	m, up, clock := newTestManager(t, 0)

	attached := m.Create()
	release := m.Attach(attached)

	uploading := m.Create()
	done := uploading.Dashboard.HandleFileSelected("slow.csv", nil)

	*clock = clock.Add(time.Hour)
	assert.Zero(t, m.CleanupOldSessions(SessionMaxAge))
	assert.Equal(t, 2, m.Count())

	// Detaching counts as a use, so the session survives one more period.
	release()
	release()
	close(up.release)
	waitDone(t, done)
	assert.Equal(t, 1, m.CleanupOldSessions(SessionMaxAge))
	_, ok := m.Get(attached.ID)
	assert.True(t, ok)
}

func TestManager_EvictsLeastRecentlyUsed(t *testing.T) {
	m, _, clock := newTestManager(t, 2)

	a := m.Create()
	*clock = clock.Add(time.Minute)
	b := m.Create()
	*clock = clock.Add(time.Minute)
	m.Get(a.ID)

	c := m.Create()
	assert.Equal(t, 2, m.Count())

	_, ok := m.Get(b.ID)
	assert.False(t, ok, "least recently used session should be evicted")
	_, ok = m.Get(a.ID)
	assert.True(t, ok)
	_, ok = m.Get(c.ID)
	assert.True(t, ok)
}

func TestManager_LimitNeverDropsActiveSessions(t *testing.T) {
	m, _, _ := newTestManager(t, 1)

	a := m.Create()
	defer m.Attach(a)()

	m.Create()
	assert.Equal(t, 2, m.Count())
	_, ok := m.Get(a.ID)
	assert.True(t, ok)
}
