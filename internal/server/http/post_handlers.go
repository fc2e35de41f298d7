package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/miniblog/internal/common"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type likeResponse struct {
	Message string `json:"message"`
	Likes   int64  `json:"likes"`
}

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(posts) == 0 {
		respondMessage(w, http.StatusNotFound, "no posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (s *Server) handlePostGet(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (s *Server) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		respondMessage(w, http.StatusBadRequest, "title and content are required")
		return
	}

	// The owner comes from the token, never from the body.
	post, err := s.posts.Create(r.Context(), SubjectID(r.Context()), req.Title, req.Content)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (s *Server) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := s.posts.Update(r.Context(), SubjectID(r.Context()), r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (s *Server) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	err := s.posts.Delete(r.Context(), SubjectID(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "post deleted")
}

func (s *Server) handlePostLike(w http.ResponseWriter, r *http.Request) {
	likes, err := s.posts.Like(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondMessage(w, http.StatusNotFound, "post not found")
			return
		}
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, likeResponse{Message: "like added", Likes: likes})
}
