package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
)

func signupRequest(username string) models.SignupRequest {
	return models.SignupRequest{
		Email:       username + "@example.com",
		Phone:       "+8801712345678",
		Password:    "secret123",
		Username:    username,
		DisplayName: "The " + username,
	}
}

func TestSignupAndSignin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", signupRequest("newuser"), nil, env.auth.Signup, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: got status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Token   string         `json:"token"`
		Profile models.Profile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if created.Token == "" {
		t.Fatal("signup response missing token")
	}
	if created.Profile.Username != "newuser" {
		t.Fatalf("signup profile username: got %q", created.Profile.Username)
	}

	signin := models.SigninRequest{Identifier: "newuser@example.com", Password: "secret123"}
	rec = env.do(t, http.MethodPost, "/auth/signin", signin, nil, env.auth.SignIn, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: got status %d: %s", rec.Code, rec.Body.String())
	}

	signin.Password = "wrongpass"
	rec = env.do(t, http.MethodPost, "/auth/signin", signin, nil, env.auth.SignIn, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("signin with bad password: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodPost, "/auth/signup", signupRequest("taken"), nil, env.auth.Signup, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: got status %d", rec.Code)
	}

	dup := signupRequest("taken")
	dup.Email = "other@example.com"
	dup.Phone = "+8801898765432"
	rec := env.do(t, http.MethodPost, "/auth/signup", dup, nil, env.auth.Signup, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSignupInvalidUsername(t *testing.T) {
	env := newTestEnv(t)

	req := signupRequest("validname")
	req.Username = "has spaces"
	rec := env.do(t, http.MethodPost, "/auth/signup", req, nil, env.auth.Signup, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid username: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
