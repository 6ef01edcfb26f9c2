package pinata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayURL(t *testing.T) {
	assert.Equal(t, "https://gw.example.com/ipfs/bafy123", GatewayURL("gw.example.com", "bafy123"))
	assert.Equal(t, PlaceholderURL, GatewayURL("gw.example.com", ""))
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "public", r.FormValue("network"))
		assert.Equal(t, "group-1", r.FormValue("group_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "lipstick.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "png-bytes", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":"f1","name":"lipstick.png","cid":"bafy123","size":9,"mime_type":"image/png","group_id":"group-1"}}`)
	}))
	defer srv.Close()

	c := NewClient(Config{JWT: "token", Gateway: "gw.example.com", UploadURL: srv.URL}, srv.Client())

	file, err := c.Upload(context.Background(), "lipstick.png", "image/png", strings.NewReader("png-bytes"), "group-1")
	require.NoError(t, err)
	assert.Equal(t, "bafy123", file.CID)
	assert.Equal(t, "lipstick.png", file.Name)
	assert.Equal(t, "https://gw.example.com/ipfs/bafy123", c.GatewayURL(file.CID))
}

func TestUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{JWT: "bad", UploadURL: srv.URL}, srv.Client())
	_, err := c.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"), "")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestUnpin(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, "OK")
	}))
	defer srv.Close()

	c := NewClient(Config{JWT: "token", APIURL: srv.URL + "/"}, srv.Client())

	require.NoError(t, c.Unpin(context.Background(), " bafy123?filename=a.png"))
	assert.Equal(t, "/pinning/unpin/bafy123", gotPath)

	assert.Error(t, c.Unpin(context.Background(), "  "))
}
