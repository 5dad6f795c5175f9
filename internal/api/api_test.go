package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vanishbin/vanishbin/internal/services"
	"github.com/vanishbin/vanishbin/internal/slug"
	"github.com/vanishbin/vanishbin/internal/stores/memory"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixedIDGenerator struct {
	id string
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type testServer struct {
	clock  *fakeClock
	router http.Handler
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()

	clock := &fakeClock{t: time.UnixMilli(1700000000000)}
	cfg := Config{
		Clock:          clock,
		MaxContentSize: 1 << 20,
		MaxTTLSeconds:  86400,
		MaxViewsCap:    100,
		MaxListLimit:   50,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		cfg.Store = memory.New(slug.NewNanoID(12), clock)
	}

	return &testServer{clock: clock, router: NewRouter(cfg)}
}

func (s *testServer) do(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createPaste(t *testing.T, body string) createdResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/pastes", []byte(body))
	require.Equal(t, http.StatusCreated, w.Code, "create response: %s", w.Body.String())
	var resp createdResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type createdResponse struct {
	ID             string `json:"id"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at"`
	RemainingViews *int64 `json:"remaining_views"`
}

type statsResponse struct {
	ID             string `json:"id"`
	CreatedAt      int64  `json:"created_at"`
	ExpiresAt      *int64 `json:"expires_at"`
	RemainingViews *int64 `json:"remaining_views"`
	ContentLength  int64  `json:"content_length"`
}

func TestCreateAndReadPaste(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createPaste(t, `{"content":"hello world","max_views":2}`)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.RemainingViews)
	assert.Equal(t, int64(2), *created.RemainingViews)
	assert.Nil(t, created.ExpiresAt)

	w := srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("x-paste-remaining-views"))

	w = srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("x-paste-remaining-views"))

	w = srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadPasteJSON(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createPaste(t, `{"content":"json body"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/pastes/"+created.ID, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "json body", resp.Content)
}

func TestReadMissingPaste(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/pastes/nosuchid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpiredPasteRead(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createPaste(t, `{"content":"short lived","ttl_seconds":60}`)
	require.NotNil(t, created.ExpiresAt)

	srv.clock.Advance(time.Minute)

	w := srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The record stays inspectable after it stops being readable.
	w = srv.do(t, http.MethodGet, "/api/pastes/"+created.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, created.ID, stats.ID)
	assert.Equal(t, int64(len("short lived")), stats.ContentLength)
}

func TestStatsDoesNotConsume(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createPaste(t, `{"content":"look but do not touch","max_views":1}`)

	for i := 0; i < 3; i++ {
		w := srv.do(t, http.MethodGet, "/api/pastes/"+created.ID+"/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats statsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		require.NotNil(t, stats.RemainingViews)
		assert.Equal(t, int64(1), *stats.RemainingViews)
	}

	w := srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreatePasteInvalid(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		name string
		body string
	}{
		{"empty content", `{"content":""}`},
		{"whitespace content", `{"content":"   "}`},
		{"not json", `content=hello`},
		{"unknown field", `{"content":"x","nope":1}`},
		{"zero max views", `{"content":"x","max_views":0}`},
		{"negative max views", `{"content":"x","max_views":-1}`},
		{"max views over cap", `{"content":"x","max_views":101}`},
		{"zero ttl", `{"content":"x","ttl_seconds":0}`},
		{"ttl over cap", `{"content":"x","ttl_seconds":86401}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/api/pastes", []byte(tc.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreatePasteTooLarge(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.MaxContentSize = 32
	})

	body := fmt.Sprintf(`{"content":%q}`, bytes.Repeat([]byte("a"), 64))
	w := srv.do(t, http.MethodPost, "/api/pastes", []byte(body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreatePasteDuplicateID(t *testing.T) {
	clock := &fakeClock{t: time.UnixMilli(1700000000000)}
	store := memory.New(fixedIDGenerator{id: "alwayssame"}, clock)
	srv := newTestServer(t, func(cfg *Config) {
		cfg.Store = store
		cfg.Clock = clock
	})

	w := srv.do(t, http.MethodPost, "/api/pastes", []byte(`{"content":"first"}`))
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodPost, "/api/pastes", []byte(`{"content":"second"}`))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeletePaste(t *testing.T) {
	srv := newTestServer(t)

	created := srv.createPaste(t, `{"content":"condemned"}`)

	w := srv.do(t, http.MethodDelete, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/pastes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPastes(t *testing.T) {
	srv := newTestServer(t)

	var ids []string
	for i := 0; i < 3; i++ {
		created := srv.createPaste(t, fmt.Sprintf(`{"content":"paste %d"}`, i))
		ids = append(ids, created.ID)
		srv.clock.Advance(time.Second)
	}

	w := srv.do(t, http.MethodGet, "/api/pastes?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pastes []statsResponse `json:"pastes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Pastes, 2)
	assert.Equal(t, ids[2], resp.Pastes[0].ID)
	assert.Equal(t, ids[1], resp.Pastes[1].ID)
}

func TestListPastesInvalidLimit(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/pastes?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodGet, "/api/pastes?limit=-3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.RateLimiter = NewRateLimiter(rate.Limit(1), 1, time.Minute)
	})

	w := srv.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	srv.createPaste(t, `{"content":"counted"}`)

	w = srv.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vanishbin_pastes_created_total")
}

var _ services.Clock = (*fakeClock)(nil)
