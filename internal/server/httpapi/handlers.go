package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/dmitrijs2005/ciphersafe/internal/logging"
	"github.com/dmitrijs2005/ciphersafe/internal/server/models"
	"github.com/go-chi/chi/v5"
)

const minPasswordLength = 8

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type ProjectService interface {
	Create(ctx context.Context, ownerID int64, name string) (*models.Project, error)
	List(ctx context.Context, ownerID int64) ([]models.Project, error)
}

type SecretService interface {
	Create(ctx context.Context, userID, projectID int64, key, value string) (*models.Secret, error)
	List(ctx context.Context, userID, projectID int64) ([]models.Secret, error)
	Delete(ctx context.Context, userID, secretID int64) error
}

// Handlers implements the API endpoints on top of the services.
type Handlers struct {
	users    UserService
	projects ProjectService
	secrets  SecretService
	logger   logging.Logger
}

func NewHandlers(users UserService, projects ProjectService, secrets SecretService, logger logging.Logger) *Handlers {
	return &Handlers{users: users, projects: projects, secrets: secrets, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentialsRequest) validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.New("email is invalid")
	}
	if len(c.Password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type projectRequest struct {
	Name string `json:"name"`
}

type secretRequest struct {
	ProjectID int64  `json:"project_id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.users.Register(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "user with this email already exists")
			return
		}
		h.logger.Error(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := h.projects.List(r.Context(), userID)
	if err != nil {
		h.logger.Error(r.Context(), "list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}
	if list == nil {
		list = []models.Project{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req projectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.projects.Create(r.Context(), userID, name)
	if err != nil {
		h.logger.Error(r.Context(), "create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) ListSecrets(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	projectID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	list, err := h.secrets.List(r.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			writeError(w, http.StatusForbidden, "You do not have permission for this project")
			return
		}
		h.logger.Error(r.Context(), "list secrets failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve secrets")
		return
	}
	if list == nil {
		list = []models.Secret{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) CreateSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req secretRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProjectID <= 0 || strings.TrimSpace(req.Key) == "" || req.Value == "" {
		writeError(w, http.StatusBadRequest, "project_id, key and value are required")
		return
	}

	if _, err := h.secrets.Create(r.Context(), userID, req.ProjectID, req.Key, req.Value); err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			writeError(w, http.StatusForbidden, "You do not have permission for this project")
			return
		}
		h.logger.Error(r.Context(), "create secret failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save secret")
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Secret created successfully"})
}

func (h *Handlers) DeleteSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	secretID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid secret ID")
		return
	}

	if err := h.secrets.Delete(r.Context(), userID, secretID); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "Secret not found")
		case errors.Is(err, common.ErrorForbidden):
			writeError(w, http.StatusForbidden, "You do not have permission for this secret")
		default:
			h.logger.Error(r.Context(), "delete secret failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete secret")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
