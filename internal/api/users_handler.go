package api

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/szabmik/slim/internal/api/shared"
)

// CreateUserRequest is the body of POST /users. Its shape is enforced by the
// RequestBody/CreateUser schema; the tags add rules a schema cannot express
// as cleanly.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	UserName string `json:"userName" validate:"omitempty,min=3,max=32"`
	Age      *int   `json:"age"      validate:"omitempty,min=0,max=150"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserName  string    `json:"userName,omitempty"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserHandler serves a small in-memory user directory.
type UserHandler struct {
	errors *ErrorHandler

	mu    sync.RWMutex
	users map[string]UserResponse
	now   func() time.Time
}

// NewUserHandler creates a UserHandler reporting faults through eh.
func NewUserHandler(eh *ErrorHandler) *UserHandler {
	return &UserHandler{
		errors: eh,
		users:  make(map[string]UserResponse),
		now:    time.Now,
	}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errors.HandleError(w, r, shared.NewHTTPError(http.StatusBadRequest, "Invalid request format.", err))
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrors(w, r, http.StatusBadRequest, ValidationErrorItems(err)...)
		return
	}

	h.mu.Lock()
	for _, u := range h.users {
		if strings.EqualFold(u.Email, req.Email) {
			h.mu.Unlock()
			shared.RespondWithErrors(w, r, http.StatusConflict, shared.NewFieldError(
				shared.ErrorTypeVerificationError,
				"email",
				"EMAIL_TAKEN",
				shared.WithDescription("A user with this email already exists."),
			))
			return
		}
	}

	user := UserResponse{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		UserName:  req.UserName,
		Age:       req.Age,
		CreatedAt: h.now().UTC(),
	}
	h.users[user.ID] = user
	h.mu.Unlock()

	opts := []shared.PayloadOption{shared.WithData(user)}
	if req.Age == nil {
		opts = append(opts, shared.WithWarning(shared.NewWarning("AGE_NOT_PROVIDED", "Age-restricted features stay disabled.")))
	}
	shared.RespondWithPayload(w, r, shared.NewPayload(http.StatusCreated, opts...))
}

// ListUsers handles GET /users?page=&limit=. Query parameters are checked by
// the QueryParameters/ListUsers schema before this runs.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 1)
	limit := intParam(r, "limit", 20)

	h.mu.RLock()
	all := make([]UserResponse, 0, len(h.users))
	for _, u := range h.users {
		all = append(all, u)
	}
	h.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{
		"items": all[start:end],
		"page":  page,
		"limit": limit,
		"total": len(all),
	})
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.mu.RLock()
	user, ok := h.users[id.String()]
	h.mu.RUnlock()

	if !ok {
		h.errors.HandleError(w, r, shared.NotFound("User not found."))
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}

func intParam(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
