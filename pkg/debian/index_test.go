package debian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func testContext(t *testing.T) context.Context {
	return logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
}

func TestIndexURL(t *testing.T) {
	target := IndexURL("http://example.test/repo", "stable", "main", "amd64")
	assert.EqualValues(t, "http://example.test/repo/dists/stable/main/binary-amd64/Packages.gz", target)
}

func TestNewIndex_Remote(t *testing.T) {
	ctx := testContext(t)

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/gzip")
		gw := gzip.NewWriter(w)
		_, _ = gw.Write([]byte("Package: libc\nDepends: base\n"))
		_ = gw.Close()
	}))
	defer ts.Close()

	idx, err := NewIndex(ctx, Request{
		Mode:         ModeRemote,
		Location:     ts.URL + "/repo",
		Distribution: "stable",
		Component:    "main",
		Architecture: "amd64",
	})
	require.NoError(t, err)
	assert.EqualValues(t, "/repo/dists/stable/main/binary-amd64/Packages.gz", gotPath)

	deps, ok := idx.Depends("libc")
	assert.True(t, ok)
	assert.EqualValues(t, []string{"base"}, deps)
}

func TestNewIndex_RemoteFailures(t *testing.T) {
	ctx := testContext(t)

	t.Run("http error status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer ts.Close()

		_, err := NewIndex(ctx, Request{Mode: ModeRemote, Location: ts.URL, Distribution: "stable", Component: "main", Architecture: "amd64"})
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("connection refused", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		_, err := NewIndex(ctx, Request{Mode: ModeRemote, Location: ts.URL, Distribution: "stable", Component: "main", Architecture: "amd64"})
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("body is not gzip", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("Package: libc\n"))
		}))
		defer ts.Close()

		_, err := NewIndex(ctx, Request{Mode: ModeRemote, Location: ts.URL, Distribution: "stable", Component: "main", Architecture: "amd64"})
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestNewIndex_LocalGzip(t *testing.T) {
	ctx := testContext(t)

	path := filepath.Join(t.TempDir(), "Packages.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte("Package: libc\nDepends: base\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	idx, err := NewIndex(ctx, Request{Mode: ModeLocal, Location: path})
	require.NoError(t, err)

	deps, ok := idx.Depends("libc")
	assert.True(t, ok)
	assert.EqualValues(t, []string{"base"}, deps)
}

func TestNewIndex_LocalXZ(t *testing.T) {
	ctx := testContext(t)

	path := filepath.Join(t.TempDir(), "Packages.xz")
	f, err := os.Create(path)
	require.NoError(t, err)
	xw, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = xw.Write([]byte("Package: libc\nDepends: base\n"))
	require.NoError(t, err)
	require.NoError(t, xw.Close())
	require.NoError(t, f.Close())

	idx, err := NewIndex(ctx, Request{Mode: ModeTest, Location: path})
	require.NoError(t, err)

	deps, ok := idx.Depends("libc")
	assert.True(t, ok)
	assert.EqualValues(t, []string{"base"}, deps)
}

func TestNewIndex_LocalPlain(t *testing.T) {
	ctx := testContext(t)

	path := filepath.Join(t.TempDir(), "Packages")
	require.NoError(t, os.WriteFile(path, []byte("Package: libc\nDepends: base\n"), 0644))

	idx, err := NewIndex(ctx, Request{Mode: ModeLocal, Location: path})
	require.NoError(t, err)
	assert.EqualValues(t, 1, idx.Count())
	assert.EqualValues(t, path, idx.Source())
}

func TestNewIndex_LocalFailures(t *testing.T) {
	ctx := testContext(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := NewIndex(ctx, Request{Mode: ModeLocal, Location: filepath.Join(t.TempDir(), "does-not-exist")})
		assert.ErrorIs(t, err, ErrTransport)
	})
	t.Run("corrupt gzip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Packages.gz")
		require.NoError(t, os.WriteFile(path, []byte("not a gzip stream"), 0644))

		_, err := NewIndex(ctx, Request{Mode: ModeLocal, Location: path})
		assert.ErrorIs(t, err, ErrDecode)
	})
	t.Run("invalid utf-8", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "Packages")
		require.NoError(t, os.WriteFile(path, []byte{'P', 0xff, 0xfe, '\n'}, 0644))

		_, err := NewIndex(ctx, Request{Mode: ModeLocal, Location: path})
		assert.ErrorIs(t, err, ErrDecode)
	})
	t.Run("unknown mode", func(t *testing.T) {
		_, err := Fetch(ctx, Request{Mode: "mirror"})
		assert.Error(t, err)
	})
}
