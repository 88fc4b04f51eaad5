package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const sessionCookieName = "sid"

type ctxKey struct{}

// owner returns the username of the session attached by private.
func owner(ctx context.Context) string {
	username, _ := ctx.Value(ctxKey{}).(string)
	return username
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// private rejects requests without a live session and checks the exchange
// path segment against the served exchange.
func (s *Server) private(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.auth.Session(r.Context(), sessionToken(r))
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, resultUnauthorized)
			return
		}
		if r.PathValue("exchange") != s.exchange {
			writeFailure(w, http.StatusNotFound, resultUnknownExchange)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, sess.Username)
		next(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
