package middleware

import (
	"bufio"
	"compress/gzip"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// DefaultCompressMinSize is the smallest body Compress gzips when given a
// non-positive size.
const DefaultCompressMinSize = 1024

// incompressible lists content types that gain nothing from gzip.
var incompressible = map[string]bool{ //nolint:gochecknoglobals
	"application/gzip":         true,
	"application/x-gzip":       true,
	"application/zip":          true,
	"application/zstd":         true,
	"application/octet-stream": true,
	"image/png":                true,
	"image/jpeg":               true,
	"image/gif":                true,
	"image/webp":               true,
}

var gzipWriters = sync.Pool{ //nolint:gochecknoglobals
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipWriter buffers the body until minSize bytes are seen or the handler
// returns, then either streams the rest through gzip or writes it as is.
type gzipWriter struct {
	http.ResponseWriter

	gz       *gzip.Writer
	minSize  int
	buf      []byte
	status   int
	decided  bool
	plain    bool
	hijacked bool
	err      error
}

func (w *gzipWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.decided {
		if w.plain {
			return w.ResponseWriter.Write(b) //nolint:wrapcheck
		}

		return w.gz.Write(b) //nolint:wrapcheck
	}

	w.buf = append(w.buf, b...)

	if len(w.buf) >= w.minSize {
		w.decide()

		if w.err != nil {
			return 0, w.err
		}
	}

	return len(b), nil
}

// Flush sends whatever has been buffered so far.
func (w *gzipWriter) Flush() {
	w.decide()

	if !w.plain {
		_ = w.gz.Flush()
	}

	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *gzipWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.hijacked = true
	}

	return conn, rw, err //nolint:wrapcheck
}

func (w *gzipWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *gzipWriter) skip() bool {
	header := w.ResponseWriter.Header()

	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(w.buf)
	}

	baseType, _, _ := strings.Cut(contentType, ";")

	switch {
	case incompressible[strings.TrimSpace(baseType)]:
		return true
	case len(w.buf) < w.minSize:
		return true
	case header.Get("Content-Encoding") != "":
		return true
	case w.status < http.StatusOK, w.status == http.StatusNoContent,
		w.status == http.StatusPartialContent, w.status == http.StatusNotModified:
		return true
	default:
		return false
	}
}

func (w *gzipWriter) decide() {
	if w.decided {
		return
	}

	w.decided = true
	w.plain = w.skip()

	if w.status == 0 {
		w.status = http.StatusOK
	}

	if !w.plain {
		header := w.ResponseWriter.Header()
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", http.DetectContentType(w.buf))
		}

		header.Set("Content-Encoding", "gzip")
		header.Del("Content-Length")

		// The encoded bytes differ from what a strong validator was computed over.
		if etag := header.Get("ETag"); etag != "" && !strings.HasPrefix(etag, "W/") {
			header.Set("ETag", "W/"+etag)
		}
	}

	w.ResponseWriter.WriteHeader(w.status)

	if len(w.buf) == 0 {
		return
	}

	if w.plain {
		_, w.err = w.ResponseWriter.Write(w.buf)
	} else {
		_, w.err = w.gz.Write(w.buf)
	}

	w.buf = nil
}

func (w *gzipWriter) finish() {
	if w.hijacked {
		return
	}

	w.decide()

	if !w.plain {
		_ = w.gz.Close()
	}
}

// acceptsGzip reports whether an Accept-Encoding header allows gzip. A zero
// quality value opts out.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		encoding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(encoding), "gzip") {
			continue
		}

		for param := range strings.SplitSeq(params, ";") {
			key, value, _ := strings.Cut(strings.TrimSpace(param), "=")
			if !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}

			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err == nil && q == 0 {
				return false
			}
		}

		return true
	}

	return false
}

// Compress gzips response bodies of at least minSize bytes for clients that
// accept gzip. A non-positive minSize selects DefaultCompressMinSize.
func Compress(minSize int) Middleware {
	if minSize <= 0 {
		minSize = DefaultCompressMinSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")

			if !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)

				return
			}

			gz, ok := gzipWriters.Get().(*gzip.Writer)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			gz.Reset(w)

			writer := &gzipWriter{ResponseWriter: w, gz: gz, minSize: minSize} //nolint:exhaustruct

			completed := false

			defer func() {
				switch {
				case completed:
					writer.finish()
				case writer.decided && !writer.plain && !writer.hijacked:
					// Terminate the stream so a pooled writer is never reused mid-frame.
					_ = gz.Close()
				}

				gz.Reset(io.Discard)
				gzipWriters.Put(gz)
			}()

			next.ServeHTTP(writer, r)

			completed = true
		})
	}
}
