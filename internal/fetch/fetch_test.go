package fetch_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashdeck/internal/fetch"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestFetchJSONDecodesDocumentAndBypassesCache(t *testing.T) {
	t.Parallel()

	var headers http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"decks":[{"id":"a","order":7}]}`))
	}))
	t.Cleanup(ts.Close)

	client := fetch.NewClient(ts.Client(), nil)
	doc, err := client.FetchJSON(context.Background(), mustParse(t, ts.URL+"/data/decks/index.json"))
	require.NoError(t, err)

	require.Equal(t, "no-cache", headers.Get("Cache-Control"))
	require.Equal(t, "no-cache", headers.Get("Pragma"))

	decks := doc.(map[string]any)["decks"].([]any)
	first := decks[0].(map[string]any)
	require.Equal(t, "a", first["id"])
	require.Equal(t, json.Number("7"), first["order"])
}

func TestFetchJSONNonSuccessStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)

	target := ts.URL + "/missing.json"
	_, err := fetch.NewClient(ts.Client(), nil).FetchJSON(context.Background(), mustParse(t, target))
	require.Error(t, err)

	var httpErr *fetch.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Status)
	require.Equal(t, target, httpErr.URL)
	require.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchJSONReportsURLAfterRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.Handle("/old.json", http.RedirectHandler("/gone.json", http.StatusFound))
	mux.Handle("/gone.json", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	_, err := fetch.NewClient(ts.Client(), nil).FetchJSON(context.Background(), mustParse(t, ts.URL+"/old.json"))

	var httpErr *fetch.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusGone, httpErr.Status)
	require.Equal(t, ts.URL+"/gone.json", httpErr.URL)
}

func TestFetchJSONTransportFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	target := ts.URL + "/index.json"
	ts.Close()

	_, err := fetch.NewClient(nil, nil).FetchJSON(context.Background(), mustParse(t, target))

	var transportErr *fetch.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, target, transportErr.URL)

	var httpErr *fetch.HTTPError
	require.False(t, errors.As(err, &httpErr))
}

func TestFetchJSONInvalidBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	t.Cleanup(ts.Close)

	_, err := fetch.NewClient(ts.Client(), nil).FetchJSON(context.Background(), mustParse(t, ts.URL))

	var decodeErr *fetch.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestFetchFromLocalDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.json"), []byte(`{"cards":[]}`), 0o644))

	client := fetch.NewClient(nil, nil)
	base := &url.URL{Scheme: "file", Path: filepath.ToSlash(dir) + "/"}

	doc, err := client.FetchJSON(context.Background(), base.ResolveReference(&url.URL{Path: "deck.json"}))
	require.NoError(t, err)
	require.Contains(t, doc.(map[string]any), "cards")

	_, err = client.FetchJSON(context.Background(), base.ResolveReference(&url.URL{Path: "absent.json"}))
	var httpErr *fetch.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestFetchBytes(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	t.Cleanup(ts.Close)

	body, err := fetch.NewClient(ts.Client(), nil).FetchBytes(context.Background(), mustParse(t, ts.URL+"/a.png"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)
}
