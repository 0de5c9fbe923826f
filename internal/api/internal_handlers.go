package api

import (
	"fmt"
	"net/http"

	"github.com/echokeys/echokeys/internal/errors"
	"github.com/echokeys/echokeys/internal/logger"
)

// Internal endpoints called by the hosting platform, not by game clients.

type appInstallResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleAppInstall(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("app installed, creating initial post")

	post, err := s.Posts.CreatePost(r.Context())
	if err != nil {
		log.Error("failed to create post on install: %v", err)
		handleError(w, r, errors.NewBadRequestError("failed to create post"))
		return
	}

	s.respondJSON(w, r, http.StatusOK, appInstallResponse{
		Status:  "success",
		Message: fmt.Sprintf("Post created with id %s", post.ID),
	})
}

type postCreateResponse struct {
	NavigateTo string `json:"navigateTo"`
}

func (s *Server) handleMenuPostCreate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("creating post from menu action")

	post, err := s.Posts.CreatePost(r.Context())
	if err != nil {
		log.Error("failed to create post from menu: %v", err)
		handleError(w, r, errors.NewBadRequestError("failed to create post"))
		return
	}

	s.respondJSON(w, r, http.StatusOK, postCreateResponse{NavigateTo: post.URL})
}
