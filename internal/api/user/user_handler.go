package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/socialseed/socialseed/internal/api"
	"github.com/socialseed/socialseed/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUserByID(w http.ResponseWriter, r *http.Request)
	GetAllUsers(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser godoc
// @Summary      Create User
// @Description  Creates a new user record.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        user body CreateUserRequest true "User fields"
// @Success      201 {object} api.Envelope{data=UserResponse} "User Created"
// @Failure      400 {object} api.Envelope "Invalid Input"
// @Failure      409 {object} api.Envelope "Email Already Registered"
// @Security     BearerAuth
// @Router       /users [post]
func (h *HandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateUser"))

	var req CreateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode create user request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.userService.CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "Email already registered")
			return
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	api.SuccessResponse(w, r, http.StatusCreated, toUserResponse(created), "User created")
}

// GetUserByID godoc
// @Summary      Get User
// @Description  Retrieves a user record by id.
// @Tags         User
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} api.Envelope{data=UserResponse} "User"
// @Failure      404 {object} api.Envelope "User Not Found"
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *HandlerImpl) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUserByID"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, toUserResponse(user), "User retrieved")
}

// GetAllUsers godoc
// @Summary      List Users
// @Description  Lists every user record.
// @Tags         User
// @Produce      json
// @Success      200 {object} api.Envelope{data=[]UserResponse} "Users"
// @Security     BearerAuth
// @Router       /users [get]
func (h *HandlerImpl) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAllUsers"))

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list users")
		return
	}

	api.SuccessResponse(w, r, http.StatusOK, toUserResponses(users), "Users retrieved")
}

// DeleteUser godoc
// @Summary      Delete User
// @Description  Deletes a user record by id. Requires the admin role.
// @Tags         User
// @Param        id path string true "User ID"
// @Success      204 "Deleted"
// @Failure      403 {object} api.Envelope "Access Denied"
// @Failure      404 {object} api.Envelope "User Not Found"
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *HandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteUser"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.userService.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
