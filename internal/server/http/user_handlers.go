package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/miniblog/internal/common"
)

// userUpdateRequest carries Age as a pointer so a request that omits the
// field is distinguishable from one that explicitly sends 0.
type userUpdateRequest struct {
	FullName string `json:"fullName"`
	Age      *int   `json:"age"`
	Email    string `json:"email"`
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.users.GetInfo(r.Context(), r.PathValue("userId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.users.Update(r.Context(), SubjectID(r.Context()), r.PathValue("userId"), req.FullName, req.Age, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "user updated")
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	err := s.users.Delete(r.Context(), SubjectID(r.Context()), r.PathValue("userId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "password is required")
		return
	}

	err := s.users.ChangePassword(r.Context(), SubjectID(r.Context()), r.PathValue("userId"), req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "password updated")
}
