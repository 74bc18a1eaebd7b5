package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// ClientIDHeader carries the client id on requests and responses.
	ClientIDHeader = "X-Client-ID"
	// ClientCookie carries the client id for browsers.
	ClientCookie = "storefront_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

type ctxKey int

const clientIDKey ctxKey = iota

// ClientIDMiddleware identifies the shopper. The id comes from the
// X-Client-ID header, then the storefront_client cookie; a missing or
// malformed id is replaced by a fresh one, which is returned in both.
func ClientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := clientIDFromRequest(r)
		if !ok {
			clientID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookie,
				Value:    clientID,
				Path:     "/",
				MaxAge:   clientCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(ClientIDHeader, clientID)

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIDFromRequest(r *http.Request) (string, bool) {
	candidates := []string{r.Header.Get(ClientIDHeader)}
	if c, err := r.Cookie(ClientCookie); err == nil {
		candidates = append(candidates, c.Value)
	}

	for _, id := range candidates {
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed.String(), true
		}
	}
	return "", false
}

// clientIDFromContext returns the id set by ClientIDMiddleware.
func clientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
