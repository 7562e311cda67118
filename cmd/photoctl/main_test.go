package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/gallery"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/photos", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]gallery.Photo{
			{ID: 1700000000001, Title: "Rooftop session", Category: "models", Tags: []string{"skyline"}},
		})
	})
	mux.HandleFunc("POST /api/search-analyze", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"AI service not configured","fallback":true}`))
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid password"}`))
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"Logout successful"}`))
	})
	mux.HandleFunc("GET /api/auth/status", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"isAuthenticated":false}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    []string
	}{
		{
			name: "list merges uploads after static photos",
			args: []string{"list"},
			want: []string{"Rooftop session", "skyline"},
		},
		{
			name: "search falls back to smart keywords",
			args: []string{"search", "skyline"},
			want: []string{"using smart search", "Rooftop session", "1 photos"},
		},
		{
			name: "status without password",
			args: []string{"status"},
			want: []string{"not authenticated"},
		},
		{
			name: "logout",
			args: []string{"logout"},
			want: []string{"Logout successful"},
		},
		{
			name:    "wrong password",
			args:    []string{"-password", "nope", "login"},
			wantErr: true,
		},
		{
			name:    "login without password",
			args:    []string{"login"},
			wantErr: true,
		},
		{
			name:    "invalid delete id",
			args:    []string{"delete", "abc"},
			wantErr: true,
		},
		{
			name:    "upload without file",
			args:    []string{"upload", "-title", "x"},
			wantErr: true,
		},
		{
			name:    "unknown command",
			args:    []string{"frobnicate"},
			wantErr: true,
		},
		{
			name:    "no command",
			args:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-server", srv.URL}, tt.args...)
			err := run(context.Background(), args, &stdout, &stderr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, stdout.String(), w)
			}
		})
	}
}

func TestRun_ListWithServerDown(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-server", url, "list"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "server unreachable")
	assert.Contains(t, stdout.String(), gallery.StaticPhotos()[0].Title)
}
