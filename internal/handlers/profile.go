package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RouqX7/AthleteConnect/internal/middleware"
	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.WriteFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_ = s.Profiles.Register(r.Context(), input).Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.WriteFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_ = s.Profiles.Login(r.Context(), input).Write(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	_ = s.Profiles.Logout(r.Context(), middleware.BearerToken(r)).Write(w)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		uid := r.URL.Query().Get("id")
		_ = s.Profiles.GetUser(r.Context(), middleware.BearerToken(r), uid).Write(w)

	case http.MethodPost:
		var profile models.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			response.WriteFail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		_ = s.Profiles.AddUser(r.Context(), profile).Write(w)

	case http.MethodPut:
		uid := r.URL.Query().Get("id")
		if uid == "" {
			uid = middleware.UserID(r.Context())
		}
		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.WriteFail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		_ = s.Profiles.EditUser(r.Context(), uid, input).Write(w)

	case http.MethodDelete:
		uid := r.URL.Query().Get("id")
		if uid == "" {
			uid = middleware.UserID(r.Context())
		}
		_ = s.Profiles.DeleteUser(r.Context(), uid).Write(w)

	default:
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := pageRequestFromQuery(r)
	if err != nil {
		response.WriteFail(w, http.StatusBadRequest, err.Error())
		return
	}
	_ = s.Profiles.ListUsers(r.Context(), req).Write(w)
}

func (s *Server) handleGenerateToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid := r.URL.Query().Get("id")
	if uid == "" {
		uid = middleware.UserID(r.Context())
	}
	_ = s.Profiles.CustomToken(r.Context(), uid).Write(w)
}

func pageRequestFromQuery(r *http.Request) (pagination.PageRequest, error) {
	q := r.URL.Query()
	req := pagination.PageRequest{
		Limit:  pagination.DefaultLimit,
		Cursor: q.Get("cursor"),
		Order:  pagination.OrderAsc,
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return req, &badParamError{"limit"}
		}
		req.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return req, &badParamError{"offset"}
		}
		req.Offset = &offset
	}
	if raw := q.Get("order"); raw != "" {
		if raw != pagination.OrderAsc && raw != pagination.OrderDesc {
			return req, &badParamError{"order"}
		}
		req.Order = raw
	}
	return req, nil
}

type badParamError struct {
	param string
}

func (e *badParamError) Error() string {
	return "invalid query parameter: " + e.param
}
