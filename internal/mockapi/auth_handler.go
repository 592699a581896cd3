package mockapi

import (
	"net/http"

	"go.uber.org/zap"
)

// tokenResponse matches the gateway's /auth/token payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// tokenHandler handles POST /auth/token. The gateway takes username
// and password as query parameters, OAuth2-password style.
func tokenHandler(auth *Auth, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")
		password := r.URL.Query().Get("password")
		if username == "" || password == "" {
			writeError(w, http.StatusUnprocessableEntity, "username and password are required")
			return
		}

		user, ok := auth.authenticate(username, password)
		if !ok {
			logger.Warn("auth: login rejected", zap.String("username", username))
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}

		token, err := auth.mint(user)
		if err != nil {
			logger.Error("auth: token mint failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not issue token")
			return
		}

		logger.Info("auth: login succeeded", zap.String("username", username))
		writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
