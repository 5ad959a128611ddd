package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/models"
	"github.com/RouqX7/AthleteConnect/internal/response"
	"github.com/RouqX7/AthleteConnect/internal/services"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// Server holds every service the HTTP surface dispatches to. All
// dependencies arrive by construction.
type Server struct {
	Posts         *services.EntityService[models.Post]
	Comments      *services.EntityService[models.Comment]
	Events        *services.EntityService[models.Event]
	Messages      *services.EntityService[models.Message]
	Reactions     *services.EntityService[models.Reaction]
	Notifications *services.EntityService[models.Notification]
	Follows       *services.EntityService[models.Follow]
	Tryouts       *services.EntityService[models.Tryout]
	Profiles      *services.ProfileService
	Metrics       *utils.MetricsCollector
	MetricsRoute  bool
	Logger        *zap.Logger
}

// Routes builds the full route table.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	registerEntityRoutes(mux, s, "/posts", s.Posts)
	registerEntityRoutes(mux, s, "/comments", s.Comments)
	registerEntityRoutes(mux, s, "/events", s.Events)
	registerEntityRoutes(mux, s, "/messages", s.Messages)
	registerEntityRoutes(mux, s, "/reactions", s.Reactions)
	registerEntityRoutes(mux, s, "/notifications", s.Notifications)
	registerEntityRoutes(mux, s, "/follows", s.Follows)
	registerEntityRoutes(mux, s, "/tryouts", s.Tryouts)

	mux.HandleFunc("/register", s.instrument("register", s.handleRegister))
	mux.HandleFunc("/login", s.instrument("login", s.handleLogin))
	mux.HandleFunc("/logout", s.instrument("logout", s.handleLogout))
	mux.HandleFunc("/user", s.instrument("user", s.handleUser))
	mux.HandleFunc("/user/list", s.instrument("user_list", s.handleUserList))
	mux.HandleFunc("/generate", s.instrument("generate_token", s.handleGenerateToken))

	mux.HandleFunc("/health", s.instrument("health", s.handleHealth))
	if s.MetricsRoute {
		mux.HandleFunc("/metrics", s.handleMetrics)
	}

	return mux
}

// statusRecorder captures the status written by a handler so the
// instrument wrapper can count failures.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request counting, latency recording,
// and panic recovery. A panic becomes a generic 500 envelope; the panic
// value is logged, never echoed to the caller.
func (s *Server) instrument(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.Metrics.IncrementRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				s.Logger.Error("handler panicked",
					zap.String("handler", name),
					zap.String("path", r.URL.Path),
					zap.Any("panic", p))
				s.Metrics.IncrementErrors()
				response.WriteFail(w, http.StatusInternalServerError, "internal server error")
			} else if rec.status >= http.StatusBadRequest {
				s.Metrics.IncrementErrors()
			}
			s.Metrics.AddOperationLatency(name, time.Since(start))
		}()

		h(rec, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	_ = response.Ok(http.StatusOK, "service healthy", "ok").Write(w)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.WriteFail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	_ = response.Ok(http.StatusOK, "metrics fetched successfully", s.Metrics.Snapshot()).Write(w)
}
