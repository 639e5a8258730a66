package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"github.com/dmitrymomot/pipeline/core/handler"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

// CompressConfig configures the response compression middleware.
type CompressConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool
	// MinLength is the smallest body worth compressing in bytes (default: 256)
	MinLength int
	// BrotliLevel is the brotli quality, 0-11 (default: brotli.DefaultCompression)
	BrotliLevel int
	// GzipLevel is the gzip level, 1-9 (default: gzip.DefaultCompression)
	GzipLevel int
	// ContentTypes lists compressible media type prefixes (default: text and common structured types)
	ContentTypes []string
}

// Compress creates a compression middleware with default configuration.
func Compress() handler.Middleware {
	return CompressWithConfig(CompressConfig{})
}

// CompressWithConfig buffers the response body and encodes it with brotli or gzip,
// whichever the client prefers in Accept-Encoding (brotli wins ties). Responses that
// are too small, already encoded or of a non-compressible type are sent as-is.
func CompressWithConfig(cfg CompressConfig) handler.Middleware {
	if cfg.MinLength <= 0 {
		cfg.MinLength = 256
	}
	if cfg.BrotliLevel == 0 {
		cfg.BrotliLevel = brotli.DefaultCompression
	}
	if cfg.GzipLevel == 0 {
		cfg.GzipLevel = gzip.DefaultCompression
	}
	if cfg.ContentTypes == nil {
		cfg.ContentTypes = []string{
			"text/",
			"application/json",
			"application/javascript",
			"application/xml",
			"image/svg+xml",
		}
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			encoding := negotiateEncoding(ctx.Request().Header.Get("Accept-Encoding"))
			if encoding == "" {
				return next(ctx)
			}

			prev := ctx.ResponseWriter()
			prev.Header().Add("Vary", "Accept-Encoding")

			buf := &bufferedWriter{header: prev.Header()}
			err := withWriter(ctx, buf, next)

			// Nothing written: leave the response to the error handler.
			if buf.status == 0 {
				return err
			}

			body := buf.body.Bytes()
			if cfg.compressible(buf.status, prev.Header(), body) {
				encoded, encErr := encode(encoding, body, cfg)
				if encErr == nil {
					prev.Header().Set("Content-Encoding", encoding)
					prev.Header().Del("Content-Length")
					body = encoded
				}
			}

			prev.WriteHeader(buf.status)
			if _, werr := prev.Write(body); werr != nil && err == nil {
				err = werr
			}
			return err
		}
	}
}

func (cfg CompressConfig) compressible(status int, header http.Header, body []byte) bool {
	if len(body) < cfg.MinLength {
		return false
	}
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	if header.Get("Content-Encoding") != "" {
		return false
	}

	ct := header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	ct = strings.ToLower(ct)
	for _, prefix := range cfg.ContentTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

func encode(encoding string, body []byte, cfg CompressConfig) ([]byte, error) {
	var out bytes.Buffer

	var w io.WriteCloser
	switch encoding {
	case encodingBrotli:
		w = brotli.NewWriterLevel(&out, cfg.BrotliLevel)
	case encodingGzip:
		gw, err := gzip.NewWriterLevel(&out, cfg.GzipLevel)
		if err != nil {
			return nil, err
		}
		w = gw
	default:
		return body, nil
	}

	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// negotiateEncoding picks br or gzip from an Accept-Encoding header, or "" if neither is acceptable.
func negotiateEncoding(accept string) string {
	if accept == "" {
		return ""
	}

	weights := make(map[string]float64, 3)
	for _, part := range strings.Split(accept, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		weights[name] = q
	}

	weight := func(name string) float64 {
		if q, ok := weights[name]; ok {
			return q
		}
		if q, ok := weights["*"]; ok {
			return q
		}
		return 0
	}

	br, gz := weight(encodingBrotli), weight(encodingGzip)
	switch {
	case br > 0 && br >= gz:
		return encodingBrotli
	case gz > 0:
		return encodingGzip
	default:
		return ""
	}
}

// bufferedWriter holds the status and body until the pipeline returns.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) Header() http.Header {
	return w.header
}

func (w *bufferedWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}
