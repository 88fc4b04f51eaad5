package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"vcdesk/internal/auth"

	"go.uber.org/zap"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentials, error) {
	var c credentials
	err := json.NewDecoder(r.Body).Decode(&c)
	return c, err
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, resultInvalidRequest)
		return
	}

	_, err = s.auth.CreateAccount(r.Context(), creds.Username, creds.Password)
	switch {
	case err == nil:
		writeSuccess(w, http.StatusCreated)
	case errors.Is(err, auth.ErrInvalidAccount):
		writeFailure(w, http.StatusBadRequest, resultInvalidRequest)
	case errors.Is(err, auth.ErrDuplicateAccount):
		writeFailure(w, http.StatusConflict, resultAlreadyExists)
	default:
		s.logger.Error("failed to create account", zap.String("username", creds.Username), zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, resultInternalError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, resultIncorrectLogin)
		return
	}

	sess, err := s.auth.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeFailure(w, http.StatusBadRequest, resultIncorrectLogin)
		return
	}
	if err != nil {
		s.logger.Error("failed to log in", zap.String("username", creds.Username), zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, resultInternalError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeSuccess(w, http.StatusOK)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if !s.auth.SessionExists(r.Context(), sessionToken(r)) {
		writeFailure(w, http.StatusNotFound, resultSessionNotExist)
		return
	}
	writeSuccess(w, http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context(), sessionToken(r))

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeSuccess(w, http.StatusOK)
}
