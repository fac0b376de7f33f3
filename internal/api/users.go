package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smartbreak/smartbreak-core/internal/auth"
)

// registerRequest is the request body for POST /usuarios.
// Student fields are required when the role is estudiante (the default).
type registerRequest struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	Role            auth.Role   `json:"rol"`
	Status          auth.Status `json:"estado"`
	StudentCode     string      `json:"codigoAlumno"`
	FullName        string      `json:"nombreCompleto"`
	Career          string      `json:"carrera"`
	LocationSharing bool        `json:"ubicacionCompartida"`
}

// registerResponse is the response body for POST /usuarios.
type registerResponse struct {
	Message string     `json:"message"`
	User    *auth.User `json:"usuario"`
}

// handleRegister creates a new user account.
//
// Duplicate emails are rejected with 400 rather than 409 because the
// clients treat any 4xx on this route as a form validation failure.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "email y password son obligatorios")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Career = strings.TrimSpace(req.Career)

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email y password son obligatorios")
		return
	}

	if !auth.IsValidEmail(auth.NormalizeEmail(req.Email)) {
		writeBadRequest(w, "email inválido")
		return
	}

	role := req.Role
	if role == "" {
		role = auth.RoleStudent
	}
	if !auth.IsValidRole(role) {
		writeBadRequest(w, "rol inválido")
		return
	}

	status := req.Status
	if status == "" {
		status = auth.StatusActive
	}
	if !auth.IsValidStatus(status) {
		writeBadRequest(w, "estado inválido")
		return
	}

	// Student accounts carry identity fields the campus clients rely on
	if role == auth.RoleStudent && (req.StudentCode == "" || req.FullName == "") {
		writeBadRequest(w, "codigoAlumno y nombreCompleto son obligatorios para estudiantes")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(w, "Error al crear usuario", err)
		return
	}

	user := &auth.User{
		Email:           req.Email,
		PasswordHash:    hash,
		Role:            role,
		Status:          status,
		StudentCode:     req.StudentCode,
		FullName:        req.FullName,
		Career:          req.Career,
		LocationSharing: req.LocationSharing,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeBadRequest(w, "El correo ya está registrado")
			return
		}
		writeInternalError(w, "Error al crear usuario", err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "Usuario creado",
		User:    user,
	})
}

// handleListUsers returns all user accounts as a bare array.
// Password hashes never serialise (json:"-" on the model).
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeInternalError(w, "Error al listar usuarios", err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
