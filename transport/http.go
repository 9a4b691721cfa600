package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	userapp "github.com/muhammadheryan/contacts/application/user"
	"github.com/muhammadheryan/contacts/cmd/config"
	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	cerr "github.com/muhammadheryan/contacts/utils/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	config  *config.Config
	UserApp userapp.UserApp
}

func NewTransport(cfg *config.Config, UserApp userapp.UserApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		config:  cfg,
		UserApp: UserApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// health
	router.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	router.HandleFunc("/db-health", rh.DBHealth).Methods(http.MethodGet)

	// internal routes
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// users
	users := router.PathPrefix("/api/users").Subrouter()
	users.HandleFunc("", rh.ListUsers).Methods(http.MethodGet)
	users.HandleFunc("", rh.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("/search/", rh.SearchUsers).Methods(http.MethodGet)
	users.HandleFunc("/search/{query}", rh.SearchUsers).Methods(http.MethodGet)
	users.HandleFunc("/{id}", rh.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", rh.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", rh.DeleteUser).Methods(http.MethodDelete)

	// middleware
	chain := []mux.MiddlewareFunc{RequestIDMiddleware(), LoggingMiddleware(), MetricsMiddleware()}
	router.Use(chain...)

	// router.Use does not reach the fallback handlers
	router.NotFoundHandler = wrap(http.HandlerFunc(rh.RouteNotFound), chain...)
	router.MethodNotAllowedHandler = wrap(http.HandlerFunc(rh.RouteNotFound), chain...)

	return CORSMiddleware(cfg.CORS.AllowedOrigins)(router)
}

// ListUsers handler
// @Summary List users
// @Description List all users, newest first
// @Tags Users
// @Produce json
// @Success 200 {object} model.UserListResponse
// @Failure 500 {object} transport.Response
// @Router /api/users [get]
func (s *RestHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res, "")
}

// SearchUsers handler
// @Summary Search users
// @Description Case-insensitive substring search over name, email, phone and company
// @Tags Users
// @Produce json
// @Param query path string true "Search fragment"
// @Success 200 {object} model.UserListResponse
// @Failure 500 {object} transport.Response
// @Router /api/users/search/{query} [get]
func (s *RestHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.Search(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res, "")
}

// GetUser handler
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} transport.Response
// @Router /api/users/{id} [get]
func (s *RestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	res, err := s.UserApp.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res, "")
}

// CreateUser handler
// @Summary Create user
// @Description Create a user. Address fields may be nested under address or sent flat.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.UserRequest true "User"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} transport.Response
// @Router /api/users [post]
func (s *RestHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	payload, err := s.decodePayload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	res, err := s.UserApp.Create(r.Context(), payload)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, res, "User created successfully")
}

// UpdateUser handler
// @Summary Update user
// @Description Partially update a user. Omitted fields are left unchanged; null clears optional fields.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body model.UserRequest true "User"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} transport.Response
// @Failure 404 {object} transport.Response
// @Router /api/users/{id} [put]
func (s *RestHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	payload, err := s.decodePayload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	res, err := s.UserApp.Update(r.Context(), id, payload)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res, "User updated successfully")
}

// DeleteUser handler
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} transport.Response
// @Failure 404 {object} transport.Response
// @Router /api/users/{id} [delete]
func (s *RestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := s.UserApp.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "User deleted successfully")
}

// Health handler
// @Summary Process liveness
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// DBHealth handler
// @Summary Database liveness
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Failure 500 {object} model.HealthErrorResponse
// @Router /db-health [get]
func (s *RestHandler) DBHealth(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.Health(r.Context())
	if err != nil {
		body := model.HealthErrorResponse{
			Status:  "error",
			Message: "Database connection failed",
		}
		var ce cerr.CustomError
		if s.config.IsDevelopment() && errors.As(err, &ce) {
			body.Error = ce.Detail()
		}
		writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// wrap applies mw so that mw[0] is the outermost handler, matching router.Use order.
func wrap(h http.Handler, mw ...mux.MiddlewareFunc) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func (s *RestHandler) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, cerr.SetCustomError(constant.ErrRouteNotFound), false)
}

func (s *RestHandler) fail(w http.ResponseWriter, err error) {
	writeError(w, err, s.config.IsDevelopment())
}

// decodePayload reads a JSON object body. Numbers are kept as json.Number.
func (s *RestHandler) decodePayload(w http.ResponseWriter, r *http.Request) (model.UserPayload, error) {
	body := http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload model.UserPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest).WithDetail(err)
	}
	if payload == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return payload, nil
}

// userID parses the {id} route variable. Ids that cannot name a row are reported as not found.
func userID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, cerr.SetCustomError(constant.ErrNotFound)
	}
	return id, nil
}
