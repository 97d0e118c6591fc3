package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationHeader carries the tenant every request is scoped to.
const OrganizationHeader = "X-Organization-ID"

type orgKey struct{}

func requireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OrganizationHeader)
		if raw == "" {
			fail(w, r, http.StatusBadRequest, "missing_organization", OrganizationHeader+" header is required")
			return
		}
		orgID, err := uuid.Parse(raw)
		if err != nil || orgID == uuid.Nil {
			fail(w, r, http.StatusBadRequest, "invalid_organization", OrganizationHeader+" must be a UUID")
			return
		}
		ctx := context.WithValue(r.Context(), orgKey{}, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func organization(ctx context.Context) uuid.UUID {
	orgID, _ := ctx.Value(orgKey{}).(uuid.UUID)
	return orgID
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
