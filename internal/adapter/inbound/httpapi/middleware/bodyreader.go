package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// rawBodyKey stores the buffered request body in context.
type rawBodyKey struct{}

// maxBodyBytes bounds request bodies; event reports and chat text are small.
const maxBodyBytes = 1 << 20

// BodyReader reads and buffers the request body so downstream handlers can
// read it after logging or validation has already consumed it.
func BodyReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body.Close()

		r.Body = io.NopCloser(bytes.NewReader(body))

		ctx := context.WithValue(r.Context(), rawBodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RawBody returns the buffered request body, if BodyReader ran.
func RawBody(r *http.Request) ([]byte, bool) {
	body, ok := r.Context().Value(rawBodyKey{}).([]byte)
	return body, ok
}
