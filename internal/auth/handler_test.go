package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(NewInMemoryAccountRepository()))
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)

	return r
}

func postJSON(r *gin.Engine, path string, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	r := setupTestRouter()

	w := postJSON(r, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["address"] == "" {
		t.Fatalf("register response missing payment address")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	r := setupTestRouter()

	w := postJSON(r, "/auth/register", map[string]string{
		"email": "test@example.com",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTestRouter()

	payload := map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	}

	// First request (should succeed)
	w1 := postJSON(r, "/auth/register", payload)
	if w1.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w1.Code)
	}

	// Second request (should fail)
	w2 := postJSON(r, "/auth/register", payload)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w2.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	r := setupTestRouter()

	postJSON(r, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "Password@123",
	})

	w := postJSON(r, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "Password@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("login response missing token")
	}

	_, _, address, err := ValidateToken(resp["token"])
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if address != resp["address"] {
		t.Errorf("token address %s does not match account address %s", address, resp["address"])
	}
}
