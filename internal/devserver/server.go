// Package devserver is a self-contained stand-in for the task manager's API,
// backed by sqlite. `taskchat serve` runs it so the client has something to
// talk to during development; tests run its handler in-process.
package devserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"taskchat/internal/model"
)

type Server struct {
	store  *Store
	logger *slog.Logger
}

func New(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{store: store, logger: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/profile", s.withAuth(s.handleProfile))
	mux.HandleFunc("GET /api/tasks", s.withAuth(s.handleListTasks))
	mux.HandleFunc("GET /api/comments/{taskID}/comments", s.withAuth(s.handleListComments))
	mux.HandleFunc("POST /api/comments/{taskID}/comments", s.withAuth(s.handleAddComment))
	mux.HandleFunc("PUT /api/comments/{taskID}/comments/{commentID}", s.withAuth(s.handleEditComment))
	mux.HandleFunc("DELETE /api/comments/{taskID}/comments/{commentID}", s.withAuth(s.handleDeleteComment))
	mux.HandleFunc("DELETE /api/comments/{taskID}/comments", s.withAuth(s.handleDeleteAllComments))
	return mux
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, viewer user)

func (s *Server) withAuth(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		u, err := s.store.UserByToken(r.Context(), token)
		if errors.Is(err, errNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if err != nil {
			s.logger.Error("auth lookup", "err", err)
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		h(w, r, u)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	u, err := s.store.UserByCredentials(r.Context(), body.Email, body.Password)
	if errors.Is(err, errNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	token, err := s.store.IssueToken(r.Context(), u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u.viewer(),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, viewer user) {
	writeJSON(w, http.StatusOK, viewer.viewer())
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, _ user) {
	tasks, err := s.store.ListTasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// requireTask resolves the {taskID} path segment, writing the error response
// itself when the task is unknown.
func (s *Server) requireTask(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("taskID")
	ok, err := s.store.TaskExists(r.Context(), taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return "", false
	}
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return "", false
	}
	return taskID, true
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, _ user) {
	taskID, ok := s.requireTask(w, r)
	if !ok {
		return
	}
	comments, err := s.store.CommentsForTask(r.Context(), taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request, viewer user) {
	taskID, ok := s.requireTask(w, r)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "comment text is empty")
		return
	}
	c, err := s.store.InsertComment(r.Context(), taskID, viewer, body.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	s.logger.Info("comment added", "task", taskID, "comment", c.ID, "author", viewer.ID)
	writeJSON(w, http.StatusCreated, c)
}

// requireOwnComment loads {commentID} and enforces that the viewer authored
// it; edits and single deletes are owner-only.
func (s *Server) requireOwnComment(w http.ResponseWriter, r *http.Request, taskID string, viewer user) (model.Comment, bool) {
	commentID := r.PathValue("commentID")
	c, err := s.store.CommentByID(r.Context(), commentID)
	if errors.Is(err, errNotFound) || (err == nil && c.TaskID != taskID) {
		writeError(w, http.StatusNotFound, "comment not found")
		return model.Comment{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return model.Comment{}, false
	}
	if c.Author.ID != viewer.ID {
		writeError(w, http.StatusForbidden, "not the comment author")
		return model.Comment{}, false
	}
	return c, true
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request, viewer user) {
	taskID, ok := s.requireTask(w, r)
	if !ok {
		return
	}
	c, ok := s.requireOwnComment(w, r, taskID, viewer)
	if !ok {
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "comment text is empty")
		return
	}
	upd, err := s.store.UpdateComment(r.Context(), c.ID, body.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	writeJSON(w, http.StatusOK, upd)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, viewer user) {
	taskID, ok := s.requireTask(w, r)
	if !ok {
		return
	}
	c, ok := s.requireOwnComment(w, r, taskID, viewer)
	if !ok {
		return
	}
	if err := s.store.DeleteComment(r.Context(), c.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllComments(w http.ResponseWriter, r *http.Request, viewer user) {
	taskID, ok := s.requireTask(w, r)
	if !ok {
		return
	}
	if viewer.Role != model.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}
	if err := s.store.DeleteAllComments(r.Context(), taskID); err != nil {
		writeError(w, http.StatusInternalServerError, "store error")
		return
	}
	s.logger.Info("thread cleared", "task", taskID, "by", viewer.ID)
	w.WriteHeader(http.StatusNoContent)
}
