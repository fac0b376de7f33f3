package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartbreak/smartbreak-core/internal/auth"
)

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the response body for POST /auth/login.
type loginResponse struct {
	AccessToken string     `json:"accessToken"`
	User        *auth.User `json:"usuario"`
}

// handleLogin authenticates a user by email and password and returns a JWT.
//
// A missing account and a wrong password produce the same 401 so the
// endpoint does not leak which emails are registered. The suspended
// check happens only after the password verifies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "email y password son obligatorios")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email y password son obligatorios")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, "Credenciales inválidas")
			return
		}
		writeInternalError(w, "Error en login", err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeUnauthorized(w, "Credenciales inválidas")
		return
	}

	if user.Status == auth.StatusSuspended {
		writeForbidden(w, "Usuario suspendido")
		return
	}

	token, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, s.secCfg.JWT.AccessTokenTTL)
	if err != nil {
		writeInternalError(w, "Error en login", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		User:        user,
	})
}

// handleMe echoes the authenticated user's token claims.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "No autenticado")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"user": map[string]any{
			"sub":   claims.Subject,
			"email": claims.Email,
			"rol":   claims.Role,
			"iat":   claims.IssuedAt.Unix(),
			"exp":   claims.ExpiresAt.Unix(),
		},
	})
}

// handleAdminOnly is the admin role gate probe used by the clients.
func (s *Server) handleAdminOnly(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Acceso de administrador concedido 👑",
	})
}
