package galleryclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/events"
	"portfolio/internal/gallery"
)

const testPassword = "letmein"

// fakeAPI is a small in-memory stand-in for the portfolio server.
type fakeAPI struct {
	mu       sync.Mutex
	photos   []gallery.Photo
	nextID   int64
	failList atomic.Bool
	listHits atomic.Int32
	analyze  func(query string) (int, any)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1001}
}

func (f *fakeAPI) setPhotos(photos []gallery.Photo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = photos
}

func (f *fakeAPI) setAnalyze(fn func(query string) (int, any)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyze = fn
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	c, err := r.Cookie("portfolio_session")
	return err == nil && c.Value == "sid-1"
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/photos", func(w http.ResponseWriter, r *http.Request) {
		f.listHits.Add(1)
		if f.failList.Load() {
			writeTestJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error", "message": "Failed to fetch photos"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, append([]gallery.Photo{}, f.photos...))
	})
	mux.HandleFunc("POST /api/photos", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized", "message": "Unauthorized"})
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			writeTestJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_request", "message": "no file uploaded"})
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		f.mu.Lock()
		defer f.mu.Unlock()
		p := gallery.Photo{
			ID:          f.nextID,
			Title:       r.FormValue("title"),
			Category:    r.FormValue("category"),
			Description: header.Header.Get("Content-Type") + ":" + string(data),
			Tags:        gallery.ParseTags(r.FormValue("tags")),
		}
		f.nextID++
		f.photos = append(f.photos, p)
		writeTestJSON(w, http.StatusCreated, p)
	})
	mux.HandleFunc("DELETE /api/photos/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized", "message": "Unauthorized"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, p := range f.photos {
			if r.PathValue("id") == strconv.FormatInt(p.ID, 10) {
				f.photos = append(f.photos[:i], f.photos[i+1:]...)
				writeTestJSON(w, http.StatusOK, map[string]string{"message": "Photo deleted successfully"})
				return
			}
		}
		writeTestJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "Photo not found"})
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != testPassword {
			writeTestJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "portfolio_session", Value: "sid-1", Path: "/", HttpOnly: true})
		writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful"})
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "portfolio_session", Value: "", Path: "/", MaxAge: -1})
		writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logout successful"})
	})
	mux.HandleFunc("GET /api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		if f.authorized(r) {
			writeTestJSON(w, http.StatusOK, map[string]any{"isAuthenticated": true, "userId": "admin"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
	})
	mux.HandleFunc("POST /api/search-analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Query string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		analyze := f.analyze
		f.mu.Unlock()
		status, body := analyze(req.Query)
		writeTestJSON(w, status, body)
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c, srv
}

func TestNew(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("://bad")
	assert.Error(t, err)

	c, err := New("http://localhost:9000/", WithHTTPClient(&http.Client{Timeout: time.Second}))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api/photos", c.endpoint("/api/photos"))
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.NotNil(t, c.http.Jar)
}

func TestClient_LoginSessionAndLogout(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, newFakeAPI())

	err := c.Login(ctx, "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid password", apiErr.Message)

	st, err := c.AuthStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsAuthenticated)

	require.NoError(t, c.Login(ctx, testPassword))
	st, err = c.AuthStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, AuthStatus{IsAuthenticated: true, UserID: "admin"}, st)

	require.NoError(t, c.Logout(ctx))
	st, err = c.AuthStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsAuthenticated)
}

func TestClient_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c, _ := newTestClient(t, api)

	in := UploadInput{
		Title:       "Harbor",
		Category:    "street",
		Tags:        "sea, night",
		Filename:    "harbor.png",
		ContentType: "image/png",
		File:        strings.NewReader("png-bytes"),
	}

	_, err := c.Upload(ctx, in)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err), "upload without a session must be rejected")

	require.NoError(t, c.Login(ctx, testPassword))
	in.File = strings.NewReader("png-bytes")
	photo, err := c.Upload(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), photo.ID)
	assert.Equal(t, "Harbor", photo.Title)
	assert.Equal(t, []string{"sea", "night"}, photo.Tags)
	assert.Equal(t, "image/png:png-bytes", photo.Description)

	_, err = c.Upload(ctx, UploadInput{Title: "x"})
	assert.Error(t, err)

	require.NoError(t, c.Delete(ctx, photo.ID))
	err = c.Delete(ctx, photo.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Photo not found", apiErr.Message)
}

func TestClient_Analyze(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c, _ := newTestClient(t, api)

	tests := []struct {
		name         string
		status       int
		body         any
		wantFallback bool
		wantErr      bool
		wantKeywords []string
	}{
		{
			name:         "analysis",
			status:       http.StatusOK,
			body:         map[string]any{"keywords": []string{"family", "kids"}, "intent": "Family photos", "categories": []string{"portraits"}},
			wantKeywords: []string{"family", "kids"},
		},
		{
			name:         "quota exceeded",
			status:       http.StatusTooManyRequests,
			body:         map[string]any{"error": "AI quota exceeded", "fallback": true, "message": "Using smart keyword search instead"},
			wantErr:      true,
			wantFallback: true,
		},
		{
			name:         "not configured",
			status:       http.StatusServiceUnavailable,
			body:         map[string]any{"error": "AI service not configured", "fallback": true, "message": "Using smart keyword search instead"},
			wantErr:      true,
			wantFallback: true,
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    map[string]any{"error": "Query is required"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.setAnalyze(func(string) (int, any) { return tt.status, tt.body })

			a, err := c.Analyze(ctx, "family")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantKeywords, a.Keywords)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantFallback, errors.Is(err, ErrFallback))
		})
	}
}

func TestRemoteExpander(t *testing.T) {
	api := newFakeAPI()
	api.setAnalyze(func(q string) (int, any) {
		return http.StatusOK, map[string]any{"keywords": []string{q, "portrait"}, "intent": "Looking for " + q}
	})
	c, _ := newTestClient(t, api)

	exp, err := RemoteExpander{Client: c}.Expand(context.Background(), "model")
	require.NoError(t, err)
	assert.Equal(t, []string{"model", "portrait"}, exp.Keywords)
	assert.Equal(t, "Looking for model", exp.Intent)

	api.setAnalyze(func(string) (int, any) { return http.StatusServiceUnavailable, map[string]any{"fallback": true} })
	_, err = RemoteExpander{Client: c}.Expand(context.Background(), "model")
	assert.ErrorIs(t, err, ErrFallback)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c, _ := newTestClient(t, api)
	static := gallery.StaticPhotos()

	cat := NewCatalog(c)
	assert.Len(t, cat.Photos(), len(static), "starts with the static photos")

	api.setPhotos([]gallery.Photo{{ID: 1001, Title: "Uploaded", Tags: []string{}}})
	require.NoError(t, cat.Refresh(ctx))
	photos := cat.Photos()
	require.Len(t, photos, len(static)+1)
	assert.Equal(t, static[0].ID, photos[0].ID, "static photos come first")
	assert.Equal(t, int64(1001), photos[len(photos)-1].ID)

	api.failList.Store(true)
	assert.Error(t, cat.Refresh(ctx))
	assert.Len(t, cat.Photos(), len(static)+1, "keeps the last good list")

	api.failList.Store(false)
	before := api.listHits.Load()
	require.NoError(t, cat.Refresh(ctx))
	require.NoError(t, cat.Refresh(ctx))
	assert.Equal(t, before+2, api.listHits.Load(), "every refresh hits the server")
}

func TestCatalog_NeverEmptyWhenServerDown(t *testing.T) {
	api := newFakeAPI()
	api.failList.Store(true)
	c, _ := newTestClient(t, api)

	cat := NewCatalog(c)
	assert.Error(t, cat.Refresh(context.Background()))
	assert.Len(t, cat.Photos(), len(gallery.StaticPhotos()))
}

func TestCatalog_WritesRefresh(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	c, _ := newTestClient(t, api)
	require.NoError(t, c.Login(ctx, testPassword))
	cat := NewCatalog(c)
	static := len(gallery.StaticPhotos())

	photo, err := cat.Upload(ctx, UploadInput{Title: "New", Category: "street", File: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Len(t, cat.Photos(), static+1)

	require.NoError(t, cat.Delete(ctx, photo.ID))
	assert.Len(t, cat.Photos(), static)

	assert.Error(t, cat.Delete(ctx, photo.ID))
}

func TestClient_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := events.NewHub()
	go hub.Run(ctx)

	api := newFakeAPI()
	mux := http.NewServeMux()
	mux.Handle("/api/photos", api.handler())
	mux.Handle("/api/events", events.Handler(hub, nil))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	cat := NewCatalog(c)

	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, cat) }()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	api.setPhotos([]gallery.Photo{{ID: 1001, Title: "Pushed", Tags: []string{}}})
	hub.PhotosChanged(ctx, "created", 1001)

	want := len(gallery.StaticPhotos()) + 1
	require.Eventually(t, func() bool { return len(cat.Photos()) == want }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
