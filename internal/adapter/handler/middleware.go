package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

var ErrPanic = errors.New("panic recovered")

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}

	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true

	return r.ResponseWriter.Write(b)
}

// requestID prefers the caller's trace, then an incoming request id, and
// mints a new one otherwise.
func requestID(r *http.Request) string {
	if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
		return sc.TraceID().String()
	}

	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}

	return uuid.NewString()
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)

		w.Header().Set(requestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf(
			"type: access, method: %s, url: %s, status: %d, userAgent: %s, requestID: %s, latency: %s",
			r.Method,
			r.URL.Path,
			rec.status,
			r.Header.Get("User-Agent"),
			id,
			time.Since(start),
		)
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if re := recover(); re != nil {
				err, ok := re.(error)
				if !ok {
					err = fmt.Errorf("%v: %w", re, ErrPanic)
				}

				log.Printf("type: panic, error: %v", err)

				// Headers already sent cannot be replaced.
				if !rec.wroteHeader {
					writeJSON(rec, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				}
			}
		}()

		next.ServeHTTP(rec, r)
	})
}

// applyMiddlewares wraps h so that the last middleware runs first.
func applyMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, middleware := range middlewares {
		h = middleware(h)
	}

	return h
}
