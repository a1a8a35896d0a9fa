package debian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/carlmjohnson/requests"
	"github.com/debdig/debdig/pkg/requestutil"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

const PackageFileGzip = "Packages.gz"

const (
	suffixGzip = ".gz"
	suffixXZ   = ".xz"
)

// NewIndex acquires and parses the package index described by req.
func NewIndex(ctx context.Context, req Request) (*Index, error) {
	raw, err := Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return ParseIndex(req.Location, raw), nil
}

// ParseIndex parses raw index text. The source is kept only as a
// label for reporting.
func ParseIndex(source, raw string) *Index {
	return &Index{
		stanzas: ParseStanzas(raw),
		source:  source,
	}
}

func (idx *Index) Count() int {
	return len(idx.stanzas)
}

func (idx *Index) Source() string {
	return idx.source
}

// Fetch returns the decompressed index text. Every call re-acquires
// from scratch; nothing is cached between calls and no failure is
// retried.
func Fetch(ctx context.Context, req Request) (string, error) {
	var raw string
	var err error
	switch req.Mode {
	case ModeRemote:
		raw, err = fetchRemote(ctx, req)
	case ModeLocal, ModeTest:
		raw, err = fetchFile(ctx, req.Location)
	default:
		return "", fmt.Errorf("unknown acquisition mode: %q", req.Mode)
	}
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: index is not valid utf-8", ErrDecode)
	}
	return raw, nil
}

// IndexURL returns the location of the Packages.gz file within the
// repository at base.
func IndexURL(base, distribution, component, arch string) string {
	return fmt.Sprintf("%s/dists/%s/%s/binary-%s/%s", base, distribution, component, arch, PackageFileGzip)
}

func fetchRemote(ctx context.Context, req Request) (string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("repo", req.Location, "distribution", req.Distribution, "component", req.Component, "arch", req.Architecture)
	log.V(1).Info("downloading index")

	target := IndexURL(req.Location, req.Distribution, req.Component, req.Architecture)
	var out strings.Builder
	err := requests.URL(target).
		Handle(requestutil.WithGzip(&out)).
		Fetch(ctx)
	switch {
	case err == nil:
	case errors.Is(err, requests.ErrValidator):
		if requests.HasStatusErr(err, http.StatusNotFound) {
			log.V(1).Info("failed to locate package index", "url", target)
		}
		return "", fmt.Errorf("%w: fetching %s: %s", ErrTransport, target, err)
	case errors.Is(err, requests.ErrURL), errors.Is(err, requests.ErrRequest), errors.Is(err, requests.ErrTransport):
		return "", fmt.Errorf("%w: fetching %s: %s", ErrTransport, target, err)
	default:
		// the response arrived but its body could not be decompressed
		return "", fmt.Errorf("%w: fetching %s: %s", ErrDecode, target, err)
	}
	log.V(1).Info("successfully downloaded index", "url", target)
	return out.String(), nil
}

func fetchFile(ctx context.Context, path string) (string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("path", path)
	log.V(1).Info("reading index")

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %s", ErrTransport, path, err)
	}
	defer f.Close()

	// compression is tagged by file name suffix, never by sniffing
	// the contents
	switch {
	case strings.HasSuffix(path, suffixGzip):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("%w: reading gzip stream %s: %s", ErrDecode, path, err)
		}
		defer gr.Close()
		return readDecoded(gr, path)
	case strings.HasSuffix(path, suffixXZ):
		xr, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("%w: reading xz stream %s: %s", ErrDecode, path, err)
		}
		return readDecoded(xr, path)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("%w: reading %s: %s", ErrTransport, path, err)
		}
		return string(data), nil
	}
}

func readDecoded(r io.Reader, path string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: decompressing %s: %s", ErrDecode, path, err)
	}
	return string(data), nil
}
