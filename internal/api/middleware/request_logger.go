package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"sort"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/szabmik/slim/internal/platform/logger"
	"github.com/szabmik/slim/internal/redact"
)

// maxLoggedBody bounds how much of a request or response body is logged.
const maxLoggedBody = 64 << 10

// RequestLogger logs every request and its response at debug level using the
// request-scoped logger. Bodies are captured only when debug logging is
// enabled.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)
		if !log.Enabled(ctx, slog.LevelDebug) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		log.DebugContext(ctx, "request has been received",
			slog.String("uri", r.URL.RequestURI()),
			slog.String("headers", headersString(r.Header)),
			slog.Any("body", peekBody(r)))

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		var captured bytes.Buffer
		ww.Tee(&limitWriter{w: &captured, n: maxLoggedBody})

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		log.DebugContext(ctx, "response has been sent",
			slog.Float64("response_time_ms", float64(time.Since(start).Microseconds())/1000),
			slog.String("uri", r.URL.RequestURI()),
			slog.Int("status_code", status),
			slog.String("headers", headersString(ww.Header())),
			slog.Any("body", jsonBody(ww.Header().Get("Content-Type"), captured.Bytes())))
	})
}

// peekBody returns the decoded JSON request body, if any, leaving r.Body
// readable from the start.
func peekBody(r *http.Request) any {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
	if err != nil {
		return nil
	}
	return jsonBody(r.Header.Get("Content-Type"), head)
}

func jsonBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/json" {
		return nil
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}

// headersString renders headers as "Name: v1, v2; Other: v". Credentials
// are masked.
func headersString(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		value := redact.Header(name, strings.Join(h[name], ", "))
		parts = append(parts, name+": "+value)
	}
	return strings.Join(parts, "; ")
}

type readCloser struct {
	io.Reader
	io.Closer
}

// limitWriter discards everything past its first n bytes without failing.
type limitWriter struct {
	w io.Writer
	n int
}

func (l *limitWriter) Write(p []byte) (int, error) {
	if l.n > 0 {
		chunk := p
		if len(chunk) > l.n {
			chunk = chunk[:l.n]
		}
		written, _ := l.w.Write(chunk)
		l.n -= written
	}
	return len(p), nil
}
