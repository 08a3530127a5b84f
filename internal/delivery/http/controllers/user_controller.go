package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"confschedule/internal/delivery/http/helpers"
	"confschedule/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Email    *string `json:"email"`
}

// Validate implements Validator.
func (c CreateUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Username) == "" {
		errs = append(errs, "username is required")
	}
	if !domain.Role(c.Role).Valid() {
		errs = append(errs, "role must be Presenter or Listener")
	}
	if c.Email != nil && !emailRegex.MatchString(strings.TrimSpace(*c.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// CreateUserSuccessResponse is the success response envelope for POST /users (201).
type CreateUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user with a unique username and a role (Presenter or Listener). The role is immutable after creation. Email is optional and only used for notification mails.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} controllers.CreateUserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (username taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.CreateUser(r.Context(), req.Username, domain.Role(req.Role), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "username already registered")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}
