package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Sameer280406/Projects/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const equipmentSummary = `{"total": 12, "avgFlow": 3.5, "avgPressure": 101.2, "avgTemp": 298.15, "types": {"Pump": 5, "Valve": 7}}`

func TestClient_Upload(t *testing.T) {
	fb := testutil.NewFakeBackend(testutil.Response{Status: http.StatusCreated, Body: equipmentSummary})
	defer fb.Close()

	c := NewClient(fb.BaseURL(), 0)
	summary, err := c.Upload(context.Background(), "equipment.csv", []byte("Type,Flowrate\nPump,3.5\n"))
	require.NoError(t, err)

	assert.Equal(t, "12", summary.Total.String())
	assert.Equal(t, []string{"Pump", "Valve"}, summary.Types.Labels())

	uploads := fb.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "equipment.csv", uploads[0].FileName)
	assert.Equal(t, "Type,Flowrate\nPump,3.5\n", string(uploads[0].Data))
	assert.True(t, strings.HasPrefix(uploads[0].ContentType, "multipart/form-data"))
	assert.Equal(t, []string{"file"}, uploads[0].FieldNames)
}

func TestClient_UploadUnvalidatedBodies(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNil   bool
		wantTotal string
	}{
		{"null body", `null`, true, ""},
		{"string fields", `{"total": "12", "types": {"Pump": "5"}}`, false, "12"},
		{"boolean field", `{"total": true}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := testutil.NewFakeBackend(testutil.Response{Status: http.StatusOK, Body: tt.body})
			defer fb.Close()

			summary, err := NewClient(fb.BaseURL(), 0).Upload(context.Background(), "x.csv", []byte("a"))
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, summary)
				return
			}
			require.NotNil(t, summary)
			assert.Equal(t, tt.wantTotal, summary.Total.String())
		})
	}
}

func TestClient_UploadFailures(t *testing.T) {
	tests := []struct {
		name       string
		resp       testutil.Response
		wantStatus int
	}{
		{"server error", testutil.Response{Status: http.StatusInternalServerError, Body: `boom`}, http.StatusInternalServerError},
		{"bad request", testutil.Response{Status: http.StatusBadRequest, Body: `{"error": "No file uploaded"}`}, http.StatusBadRequest},
		{"malformed body", testutil.Response{Status: http.StatusCreated, Body: `not json`}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := testutil.NewFakeBackend(tt.resp)
			defer fb.Close()

			c := NewClient(fb.BaseURL(), 0)
			_, err := c.Upload(context.Background(), "x.csv", []byte("a"))
			require.Error(t, err)

			var upErr *UploadError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.wantStatus, upErr.StatusCode)
			assert.Equal(t, "upload", upErr.Op)
		})
	}
}

func TestClient_UploadUnreachable(t *testing.T) {
	fb := testutil.NewFakeBackend(testutil.Response{})
	base := fb.BaseURL()
	fb.Close()

	var traced []string
	c := NewClient(base, 2*time.Second)
	c.DebugLog = func(format string, args ...any) { traced = append(traced, format) }

	_, err := c.Upload(context.Background(), "x.csv", []byte("a"))
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Zero(t, upErr.StatusCode)
	assert.NotNil(t, upErr.Unwrap())
	assert.NotEmpty(t, traced)
}

func TestClient_LatestAndHistory(t *testing.T) {
	fb := testutil.NewFakeBackend(testutil.Response{})
	defer fb.Close()

	c := NewClient(fb.BaseURL()+"/", 0)

	_, err := c.Latest(context.Background())
	assert.Error(t, err, "404 from backend should be an error")

	fb.SetLatest(testutil.Response{Status: http.StatusOK, Body: `{"id": 1, "name": "a.csv", "uploaded_at": "2025-02-01T08:00:00Z", "total_count": 2, "type_distribution": {"Pump": 2}}`})
	fb.SetHistory(testutil.Response{Status: http.StatusOK, Body: `[{"id": 2, "name": "b.csv", "uploaded_at": "2025-02-02T08:00:00Z"}, {"id": 1, "name": "a.csv", "uploaded_at": "2025-02-01T08:00:00Z"}]`})

	latest, err := c.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a.csv", latest.Name)
	assert.Equal(t, "2", latest.ToSummary().Total.String())

	history, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "b.csv", history[0].Name)
}

func TestClient_UploadURL(t *testing.T) {
	c := NewClient(DefaultBaseURL, 0)
	assert.Equal(t, "http://127.0.0.1:8000/api/upload/", c.UploadURL())
}
