package mailchimp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_Unconfigured(t *testing.T) {
	c := NewClient("", log.DefaultLogger)
	note, err := c.Subscribe(context.Background(), "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "Skipped Mailchimp (configuration missing)", note)
}

func TestSubscribe_RewritesToJSONPEndpoint(t *testing.T) {
	var gotPath, gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEmail = r.URL.Query().Get("EMAIL")
		w.Write([]byte(`?({"result":"success","msg":"Thank you for subscribing!"})`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/subscribe/post?u=123&id=456", log.DefaultLogger)
	note, err := c.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "/subscribe/post-json", gotPath)
	assert.Equal(t, "reader@example.com", gotEmail)
	assert.Equal(t, "Subscribed to the weekly digest", note)
}

func TestSubscribe_DeclineIsANoteNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`?({"result":"error","msg":"reader@example.com is already subscribed"})`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/subscribe/post?u=1&id=2", log.DefaultLogger)
	note, err := c.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Contains(t, note, "already subscribed")
}

func TestSubscribe_UnreachableEndpointErrors(t *testing.T) {
	c := NewClient("http://127.0.0.1:1/subscribe/post?u=1&id=2", log.DefaultLogger)
	_, err := c.Subscribe(context.Background(), "a@b.co")
	assert.Error(t, err)
}
