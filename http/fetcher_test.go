package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docsem/docsem"
	dochttp "github.com/docsem/docsem/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := dochttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
	})

	t.Run("sends a browser-conventional User-Agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := dochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, gotUA, "Mozilla/5.0")
	})

	t.Run("honors a custom User-Agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := dochttp.NewFetcher(dochttp.WithUserAgent("docsem-test/1.0"))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "docsem-test/1.0", gotUA)
	})

	t.Run("returns EUNAVAILABLE for non-2xx status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		f := dochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, docsem.EUNAVAILABLE, docsem.ErrorCode(err))
		assert.Contains(t, docsem.ErrorMessage(err), "HTTP 404")
	})

	t.Run("returns EUNAVAILABLE for transport failure", func(t *testing.T) {
		t.Parallel()

		f := dochttp.NewFetcher(dochttp.WithTimeout(500 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1") // nothing listens here
		require.Error(t, err)
		assert.Equal(t, docsem.EUNAVAILABLE, docsem.ErrorCode(err))
	})
}
