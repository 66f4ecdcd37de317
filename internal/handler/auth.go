package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cybermarket/server/internal/auth"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall=\x00\n\r\t "`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// SessionResponse carries a fresh token plus the account it grants access to.
type SessionResponse struct {
	Token  string          `json:"token"`
	Expiry int64           `json:"expiry"`
	User   *domain.Account `json:"user"`
}

// HandleSignup registers a new account and returns a session
// @Summary Register a new account
// @Description Create an account, seed the starting user record and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Credentials"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func HandleSignup(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode signup request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid signup request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		session, err := svc.Signup(r.Context(), req.Username, req.Password)
		if err != nil {
			log.Error("Signup failed", "error", err, "username", req.Username)
			respondServiceError(w, err)
			return
		}

		log.Info("Account created", "username", req.Username, "user_id", session.User.ID)

		respondJSON(w, http.StatusCreated, SessionResponse{
			Token:  session.Token,
			Expiry: session.Expiry,
			User:   session.User,
		})
	}
}

// HandleLogin authenticates an existing account
// @Summary Log in
// @Description Verify credentials and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func HandleLogin(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode login request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid login request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		session, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			log.Warn("Login failed", "error", err, "username", req.Username)
			respondServiceError(w, err)
			return
		}

		log.Info("Login succeeded", "username", req.Username, "user_id", session.User.ID)

		respondJSON(w, http.StatusOK, SessionResponse{
			Token:  session.Token,
			Expiry: session.Expiry,
			User:   session.User,
		})
	}
}
