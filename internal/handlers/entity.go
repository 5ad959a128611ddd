package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RouqX7/AthleteConnect/internal/middleware"
	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/services"
)

// registerEntityRoutes wires one entity kind's CRUD surface onto the mux:
// POST/GET/PUT/DELETE on the base path keyed by ?id=, plus /list for
// collection reads with an optional field=/value= equality filter.
func registerEntityRoutes[T any](mux *http.ServeMux, s *Server, base string, svc *services.EntityService[T]) {
	mux.HandleFunc(base, s.instrument(svc.Kind(), func(w http.ResponseWriter, r *http.Request) {
		handleEntity(w, r, svc)
	}))
	mux.HandleFunc(base+"/list", s.instrument(svc.Kind()+"_list", func(w http.ResponseWriter, r *http.Request) {
		handleEntityList(w, r, svc)
	}))
}

func handleEntity[T any](w http.ResponseWriter, r *http.Request, svc *services.EntityService[T]) {
	switch r.Method {
	case http.MethodPost:
		var input T
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.WriteFail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		owner := middleware.UserID(r.Context())
		_ = svc.Create(r.Context(), owner, &input).Write(w)

	case http.MethodGet:
		_ = svc.Get(r.Context(), r.URL.Query().Get("id")).Write(w)

	case http.MethodPut:
		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.WriteFail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		_ = svc.Update(r.Context(), r.URL.Query().Get("id"), input).Write(w)

	case http.MethodDelete:
		_ = svc.Delete(r.Context(), r.URL.Query().Get("id")).Write(w)

	default:
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func handleEntityList[T any](w http.ResponseWriter, r *http.Request, svc *services.EntityService[T]) {
	if r.Method != http.MethodGet {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if field := r.URL.Query().Get("field"); field != "" {
		_ = svc.GetByField(r.Context(), field, r.URL.Query().Get("value")).Write(w)
		return
	}
	_ = svc.List(r.Context()).Write(w)
}
