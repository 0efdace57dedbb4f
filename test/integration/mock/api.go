package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is a programmable HTTP server standing in for an upstream API.
// Responses are keyed by method and path; unknown routes answer 404.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	responses map[string]cannedResponse
	requests  map[string][]map[string]any
	headers   map[string][]http.Header
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		responses: map[string]cannedResponse{},
		requests:  map[string][]map[string]any{},
		headers:   map[string][]http.Header{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], request)
	a.headers[key] = append(a.headers[key], r.Header.Clone())
	canned, ok := a.responses[key]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no response configured"}`))
		return
	}
	w.WriteHeader(canned.status)
	payload, _ := json.Marshal(canned.body)
	_, _ = w.Write(payload)
}

// SetResponse configures the answer for every request to method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+path] = cannedResponse{status: status, body: body}
}

// RequestCount returns how many requests reached method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests[method+path])
}

// GetRequestBody returns the decoded JSON body of the index-th request, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.requests[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// GetRequestHeaders returns the headers of the index-th request, or nil.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.headers[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// Reset drops every configured response and recorded request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = map[string]cannedResponse{}
	a.requests = map[string][]map[string]any{}
	a.headers = map[string][]http.Header{}
}
