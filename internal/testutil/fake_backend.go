// fake_backend.go - In-process stand-in for the CSV processing backend
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ReceivedUpload is what the fake backend saw for one upload request.
type ReceivedUpload struct {
	FileName    string
	Data        []byte
	ContentType string
	FieldNames  []string
}

// Response is a canned reply for the upload endpoint.
type Response struct {
	Status int
	Body   string
	// Gate, when set, holds the reply until it is closed.
	Gate chan struct{}
}

// FakeBackend serves the upload and summary endpoints from canned responses.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	queue    []Response
	fallback Response
	uploads  []ReceivedUpload
	latest   Response
	history  Response
}

// NewFakeBackend starts a fake backend that answers every upload with fallback.
func NewFakeBackend(fallback Response) *FakeBackend {
	f := &FakeBackend{
		fallback: fallback,
		latest:   Response{Status: http.StatusNotFound, Body: `{"error": "No data"}`},
		history:  Response{Status: http.StatusOK, Body: `[]`},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload/", f.handleUpload)
	mux.HandleFunc("/api/summary/latest/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		resp := f.latest
		f.mu.Unlock()
		write(w, resp)
	})
	mux.HandleFunc("/api/summary/history/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		resp := f.history
		f.mu.Unlock()
		write(w, resp)
	})
	f.Server = httptest.NewServer(mux)
	return f
}

// BaseURL returns the API root to hand to backend.NewClient.
func (f *FakeBackend) BaseURL() string {
	return f.Server.URL + "/api"
}

// Close shuts the server down.
func (f *FakeBackend) Close() {
	f.Server.Close()
}

// Enqueue queues responses that are used, in order, before the fallback.
func (f *FakeBackend) Enqueue(responses ...Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, responses...)
}

// SetLatest sets the reply for the latest-summary endpoint.
func (f *FakeBackend) SetLatest(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = resp
}

// SetHistory sets the reply for the history endpoint.
func (f *FakeBackend) SetHistory(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = resp
}

// Uploads returns a copy of every upload received so far.
func (f *FakeBackend) Uploads() []ReceivedUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ReceivedUpload, len(f.uploads))
	copy(out, f.uploads)
	return out
}

func (f *FakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	got := ReceivedUpload{ContentType: r.Header.Get("Content-Type")}
	if err := r.ParseMultipartForm(32 << 20); err == nil {
		for name := range r.MultipartForm.File {
			got.FieldNames = append(got.FieldNames, name)
		}
		for name := range r.MultipartForm.Value {
			got.FieldNames = append(got.FieldNames, name)
		}
		if file, header, err := r.FormFile("file"); err == nil {
			got.FileName = header.Filename
			got.Data, _ = io.ReadAll(file)
			file.Close()
		}
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, got)
	resp := f.fallback
	if len(f.queue) > 0 {
		resp = f.queue[0]
		f.queue = f.queue[1:]
	}
	f.mu.Unlock()

	if resp.Gate != nil {
		<-resp.Gate
	}
	write(w, resp)
}

func write(w http.ResponseWriter, resp Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, resp.Body)
}
