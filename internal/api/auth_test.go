package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smartbreak/smartbreak-core/internal/auth"
)

// ─── Login Tests ───────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	createTestUser(t, srv, "ana@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusActive)

	body := `{"email": "ana@universidad.edu", "password": "secreta123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.AccessToken == "" {
		t.Error("expected accessToken to be non-empty")
	}
	if resp.User == nil {
		t.Fatal("expected usuario to be present")
	}
	if resp.User.Email != "ana@universidad.edu" {
		t.Errorf("usuario.email = %q, want ana@universidad.edu", resp.User.Email)
	}

	// Password hash never serialises
	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Error("response must not contain passwordHash")
	}

	// Token should parse with the server secret
	claims, err := auth.ParseToken(resp.AccessToken, testJWTSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != "ana@universidad.edu" {
		t.Errorf("claims.email = %q", claims.Email)
	}
	if claims.Role != auth.RoleStudent {
		t.Errorf("claims.rol = %q, want estudiante", claims.Role)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email": "ana@universidad.edu"}`},
		{"missing email", `{"password": "secreta123"}`},
		{"invalid JSON", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var resp Error
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Message != "email y password son obligatorios" {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}

func TestLogin_UniformRejection(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	createTestUser(t, srv, "ana@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusActive)

	// Unknown email and wrong password must be indistinguishable
	for _, body := range []string{
		`{"email": "nadie@universidad.edu", "password": "whatever"}`,
		`{"email": "ana@universidad.edu", "password": "wrong"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}

		var resp Error
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Message != "Credenciales inválidas" {
			t.Errorf("message = %q, want Credenciales inválidas", resp.Message)
		}
	}
}

func TestLogin_Suspended(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	createTestUser(t, srv, "baneado@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusSuspended)

	// Correct password on a suspended account is a distinct 403
	body := `{"email": "baneado@universidad.edu", "password": "secreta123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	var resp Error
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Usuario suspendido" {
		t.Errorf("message = %q, want Usuario suspendido", resp.Message)
	}

	// Wrong password on the same account stays a 401, not a 403
	body = `{"email": "baneado@universidad.edu", "password": "wrong"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password on suspended account status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// ─── /me Tests ─────────────────────────────────────────────────────

func TestMe_WithToken(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	user := createTestUser(t, srv, "ana@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusActive)
	token := testToken(t, user)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp["ok"] != true {
		t.Errorf("ok = %v, want true", resp["ok"])
	}

	claims, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("user is not a map: %T", resp["user"])
	}
	if claims["sub"] != user.ID {
		t.Errorf("user.sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["email"] != "ana@universidad.edu" {
		t.Errorf("user.email = %v", claims["email"])
	}
	if claims["rol"] != "estudiante" {
		t.Errorf("user.rol = %v, want estudiante", claims["rol"])
	}
}

func TestMe_NoToken(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp Error
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Token requerido" {
		t.Errorf("message = %q, want Token requerido", resp.Message)
	}
}

func TestMe_InvalidToken(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp Error
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Token inválido o expirado" {
		t.Errorf("message = %q, want Token inválido o expirado", resp.Message)
	}
}

func TestMe_WrongSecretToken(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	user := createTestUser(t, srv, "ana@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusActive)

	token, err := auth.GenerateAccessToken(user, "a-different-secret-that-is-32-chars!", 120)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// ─── Admin Gate Tests ──────────────────────────────────────────────

func TestAdminOnly_AsAdmin(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	admin := createTestUser(t, srv, "admin@universidad.edu", "secreta123", auth.RoleAdmin, auth.StatusActive)
	token := testToken(t, admin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["ok"] != true {
		t.Errorf("ok = %v, want true", resp["ok"])
	}
}

func TestAdminOnly_AsStudent(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	student := createTestUser(t, srv, "ana@universidad.edu", "secreta123", auth.RoleStudent, auth.StatusActive)
	token := testToken(t, student)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	var resp Error
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "No autorizado" {
		t.Errorf("message = %q, want No autorizado", resp.Message)
	}
}

func TestAdminOnly_NoToken(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
