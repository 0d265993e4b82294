package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushover_Notify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		title  string
		want   bool
	}{
		{name: "accepted", status: http.StatusOK, want: true},
		{name: "accepted with title", status: http.StatusOK, title: "homelab", want: true},
		{name: "bad token", status: http.StatusBadRequest, want: false},
		{name: "server error", status: http.StatusInternalServerError, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "app-token", r.PostForm.Get("token"))
				assert.Equal(t, "user-key", r.PostForm.Get("user"))
				assert.Equal(t, "Failed to update gitea to v1.22.0. Error message: disk full", r.PostForm.Get("message"))
				assert.Equal(t, tt.title, r.PostForm.Get("title"))
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			p := NewPushover("app-token", "user-key", tt.title)
			p.Endpoint = server.URL

			got := p.Notify(context.Background(), "Failed to update gitea to v1.22.0. Error message: disk full")
			require.Equal(t, tt.want, got)
			require.Equal(t, 1, calls)
		})
	}
}

func TestPushover_NotifyWithoutCredentials(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	for _, p := range []*Pushover{
		NewPushover("", "user-key", ""),
		NewPushover("app-token", "", ""),
		NewPushover("", "", ""),
	} {
		p.Endpoint = server.URL
		require.False(t, p.Enabled())
		require.False(t, p.Notify(context.Background(), "hello"))
	}
	require.Zero(t, calls)
}

func TestPushover_NotifyUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	p := NewPushover("app-token", "user-key", "")
	p.Endpoint = endpoint
	require.False(t, p.Notify(context.Background(), "hello"))
}
