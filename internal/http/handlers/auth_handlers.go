package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

func userResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// RegisterHandler godoc
// @Summary Register new user and return tokens
// @Tags sessions
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "username and password"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope "User exists"
// @Router /api/sessions/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	user, tokens, err := s.auth.Register(r.Context(), req.Username, req.Password, models.RoleUser)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, SessionResult{User: userResponse(user), Tokens: tokens})
}

// LoginHandler godoc
// @Summary Authenticate user and return tokens
// @Tags sessions
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /api/sessions/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	user, tokens, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, SessionResult{User: userResponse(user), Tokens: tokens})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "refresh token"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /api/sessions/refresh [post]
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.writeValidationErrors(w, errs)
		return
	}

	tokens, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			s.writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, tokens)
}

// LogoutHandler godoc
// @Summary Revoke a refresh token
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "refresh token"
// @Success 200 {object} Envelope
// @Router /api/sessions/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if err := s.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, http.StatusOK, "logged out")
}

// CurrentUserHandler godoc
// @Summary Current user from the access token
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /api/sessions/current [get]
func (s *Server) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	s.writeSuccess(w, http.StatusOK, UserResponse{ID: claims.UserID, Username: claims.Username, Role: claims.Role})
}
