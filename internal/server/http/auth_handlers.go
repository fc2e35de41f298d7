package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/miniblog/internal/common"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

type registerResponse struct {
	Token            string `json:"token"`
	Message          string `json:"message"`
	VerificationLink string `json:"verificationLink"`
	Message2         string `json:"message2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "fullName, email and password are required")
		return
	}

	res, err := s.users.Register(r.Context(), req.FullName, req.Email, req.Age, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		Token:            res.Token,
		Message:          "user registered, please verify your email address to activate your account",
		VerificationLink: res.VerificationLink,
		Message2:         "the verification link has been sent to your email address; you can also open it directly to verify your account",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// An unknown account is reported distinctly from a bad password.
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// handleLogout is advisory: tokens stay valid until expiry, so all it does
// is require a presented token and tell the client to drop its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(common.AccessTokenHeaderName) == "" {
		s.respondError(w, r, common.ErrMissingToken)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondMessage(w, http.StatusOK, "logged out")
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.AccessTokenHeaderName)
	if token == "" {
		s.respondError(w, r, common.ErrMissingToken)
		return
	}

	fresh, err := s.users.Refresh(token)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: fresh})
}
