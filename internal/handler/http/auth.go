package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/identity"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.register").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.register")
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: user}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.login").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.login")
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromRequest(r)

	user, err := h.services.AuthService.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.me")
		return
	}

	utils.WriteJSON(w, models.MeResponse{User: user}, http.StatusOK)
}

// logout drops the server session named by the cookie. Bearer tokens are
// stateless and stay valid until they expire.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(identity.SessionCookieName); err == nil {
		if err = h.services.OAuthService.Logout(r.Context(), cookie.Value); err != nil {
			logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.logout").Msg("session was not deleted")
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) beginGoogleLogin(w http.ResponseWriter, r *http.Request) {
	authURL, session, err := h.services.OAuthService.BeginLogin(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "*Handler.beginGoogleLogin")
		return
	}

	h.setSessionCookie(w, session.ID, session.ExpiresAt)
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// completeGoogleLogin always answers with a redirect to the client: with
// ?token= on success and ?error= otherwise.
func (h *Handler) completeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		log.Warn().Str("provider_error", providerErr).Msg("google sign-in was not granted")
		h.redirectToClient(w, r, "error", app.RedirectErrOAuthFailed)
		return
	}

	var sessionID string
	if cookie, err := r.Cookie(identity.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	user, token, err := h.services.OAuthService.CompleteLogin(r.Context(), sessionID, query.Get("state"), query.Get("code"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.completeGoogleLogin").Msg("google sign-in failed")
		h.redirectToClient(w, r, "error", redirectErrorCode(err))
		return
	}

	if exp := token.Claims.ExpiresAt; exp != nil {
		h.setSessionCookie(w, sessionID, exp.Time)
	}

	log.Info().Int64("id", user.ID).Msg("user signed in with google")
	h.redirectToClient(w, r, "token", token.SignedString)
}

func redirectErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailInUse):
		return app.RedirectErrEmailInUse
	case errors.Is(err, service.ErrOAuthDisabled):
		return app.RedirectErrOAuthDisabled
	default:
		return app.RedirectErrOAuthFailed
	}
}

func (h *Handler) redirectToClient(w http.ResponseWriter, r *http.Request, key, value string) {
	target, err := url.Parse(h.settings.ClientURL)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("client_url", h.settings.ClientURL).Msg("invalid client url")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	q := target.Query()
	q.Set(key, value)
	target.RawQuery = q.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     identity.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.settings.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     identity.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.settings.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
