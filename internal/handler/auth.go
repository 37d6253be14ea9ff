package handler

import (
	"net/http"
	"time"

	"github.com/templui/userbase/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	AuthMethod string `json:"authMethod"`
	Picture    string `json:"picture"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	LastLogin time.Time `json:"lastLogin"`
	Profile   any       `json:"profile"`
}

// Signup creates an account and its profile.
// POST /signup
func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	result, err := h.authService.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, "failed to create user")
		return
	}

	writeSuccess(w, http.StatusCreated, "user created successfully", signupResponse{
		Email:      result.Account.Email,
		Username:   result.Account.Username,
		AuthMethod: result.Account.AuthMethod,
		Picture:    result.Account.Picture(),
	})
}

// Login checks credentials and returns the account with its profile.
// POST /login
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "failed to log in")
		return
	}

	// A missing profile is sent as an empty object.
	var profile any = struct{}{}
	if result.Profile != nil {
		profile = result.Profile
	}

	writeSuccess(w, http.StatusOK, "login successful", loginResponse{
		Email:     result.Account.Email,
		Username:  result.Account.Username,
		LastLogin: result.LoginAt,
		Profile:   profile,
	})
}
