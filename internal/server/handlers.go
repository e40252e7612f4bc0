package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"stash/internal/api"
	"stash/internal/logging"
	"stash/internal/services"
	"stash/internal/store"
)

const maxRequestBody = 64 << 10

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	api.WriteSuccess(w, http.StatusOK, map[string]any{
		"message": "Stash API - Video Content Organizer",
		"endpoints": map[string]string{
			"/api/health": "health check",
			"/api/videos": "saved videos",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if err := s.capabilities.Store.Ping(r.Context()); err != nil {
		status = "degraded"
		s.requestLog(r).Error("store ping failed", logging.Error(err))
	}
	payload := api.HealthResponse{
		Status:              status,
		Service:             "stash-api",
		Version:             Version,
		SummarizerAvailable: s.capabilities.SummarizerAvailable(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	token, user, err := s.capabilities.Auth.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log().Info("user registered", logging.String("username", user.Username))
	api.WriteSuccess(w, http.StatusCreated, api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	token, user, err := s.capabilities.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, api.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    user.Username,
	})
}

func (s *Server) handleSaveVideo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := services.OwnerFromContext(r.Context())
	if !ok {
		s.rejectUnauthorized(w, r, services.Wrap(services.ErrUnauthorized, "api", "save video", "no owner in context", nil))
		return
	}

	var req api.VideoRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		api.WriteFailure(w, "validation_error", "url is required")
		return
	}

	result, err := s.capabilities.Pipeline.SaveVideo(r.Context(), ownerID, strings.TrimSpace(req.URL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadySaved {
		status = http.StatusOK
	}
	api.WriteSuccess(w, status, api.SaveVideoResponse{
		Video:            api.FromVideo(result.Video),
		AlreadySaved:     result.AlreadySaved,
		SummaryAvailable: result.SummaryAvailable,
		SummaryNote:      result.SummaryNote,
	})
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := services.OwnerFromContext(r.Context())
	videos, err := s.capabilities.Store.VideosByOwner(r.Context(), ownerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, api.VideoListResponse{
		Videos: api.FromVideoList(videos),
		Count:  len(videos),
	})
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := services.OwnerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	video, err := s.capabilities.Store.VideoByID(r.Context(), ownerID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if video == nil {
		api.WriteFailure(w, "not_found", "video not found")
		return
	}
	api.WriteSuccess(w, http.StatusOK, api.FromVideo(video))
}

func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := services.OwnerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.VideoUpdateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	video, err := s.capabilities.Store.UpdateVideo(r.Context(), ownerID, id, store.VideoUpdate{
		Title:   req.Title,
		Summary: req.Summary,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	api.WriteSuccess(w, http.StatusOK, api.FromVideo(video))
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := services.OwnerFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := s.capabilities.Store.DeleteVideo(r.Context(), ownerID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		api.WriteFailure(w, "not_found", "video not found")
		return
	}
	api.WriteSuccess(w, http.StatusOK, map[string]int64{"deleted_id": id})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		api.WriteFailure(w, "validation_error", "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		api.WriteFailure(w, "validation_error", "invalid video id")
		return 0, false
	}
	return id, true
}

func (s *Server) rejectUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	s.requestLog(r).Warn("unauthorized request", logging.Error(err))
	api.WriteError(w, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := s.requestLog(r)
	if api.StatusForTag(services.Tag(err)) >= http.StatusInternalServerError {
		logger.Error("request failed", logging.Error(err))
	} else {
		logger.Warn("request rejected", logging.Error(err))
	}
	api.WriteError(w, err)
}

func (s *Server) requestLog(r *http.Request) *slog.Logger {
	logger := s.log()
	if id, ok := services.RequestIDFromContext(r.Context()); ok {
		logger = logger.With(logging.String(logging.FieldRequestID, id))
	}
	if username, ok := services.UsernameFromContext(r.Context()); ok {
		logger = logger.With(logging.String("username", username))
	}
	return logger
}
