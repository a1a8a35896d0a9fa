package requestutil

import (
	"fmt"
	"io"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
)

var ContentTypesGzip = []string{
	"application/gzip",
	"application/x-gzip",
}

// WithGzip decompresses the response body into out while the body
// is being read. The body is always treated as gzip, whatever the
// server declares.
func WithGzip(out io.Writer) requests.ResponseHandler {
	return func(response *http.Response) error {
		log := logr.FromContextOrDiscard(response.Request.Context())

		if !isGzipped(response.Header.Get("Content-Type")) {
			log.V(8).Info("server did not declare a gzip content type", "contentType", response.Header.Get("Content-Type"))
		}

		dec, err := gzip.NewReader(response.Body)
		if err != nil {
			return fmt.Errorf("decompressing: %w", err)
		}
		defer dec.Close()

		if _, err := io.Copy(out, dec); err != nil {
			return fmt.Errorf("writing uncompressed output: %w", err)
		}
		return nil
	}
}

func isGzipped(s string) bool {
	return mimetype.EqualsAny(s, ContentTypesGzip...)
}
