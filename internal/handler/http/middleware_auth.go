package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/identity"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

// authenticate resolves the caller with chain and rejects the request with
// 401 unless some strategy authenticated it. A bearer token that is present
// but invalid fails the request even if a valid session cookie is also sent.
//
// On success the identity is stored with [utils.WithIdentity] and the
// request logger gains a user_id field.
func (h *Handler) authenticate(chain *identity.Chain) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			res := chain.Resolve(r)
			if res.Outcome != identity.Authenticated {
				log.Debug().
					Err(res.Err).
					Str("outcome", res.Outcome.String()).
					Str("strategy", res.Strategy).
					Msg("request is not authenticated")
				utils.WriteError(w, app.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			ctx := utils.WithIdentity(r.Context(), res.Identity)
			ctx = log.WithUserID(res.Identity.UserID).WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDFromRequest returns the user id stored by authenticate.
func userIDFromRequest(r *http.Request) (int64, bool) {
	return utils.GetUserIDFromContext(r.Context())
}
