package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confschedule/internal/delivery/http/helpers"
	"confschedule/internal/domain"
)

// CreateRoomRequest is the request body for POST /rooms.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c CreateRoomRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateRoomSuccessResponse is the success response envelope for POST /rooms (201).
type CreateRoomSuccessResponse struct {
	Data  *domain.Room      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRoomsSuccessResponse is the success response envelope for GET /rooms (200).
type ListRoomsSuccessResponse struct {
	Data  []*domain.Room    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
}

func NewRoomController(logger *slog.Logger, svc domain.RoomService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRoom godoc
// @Summary Create a new room
// @Description Add a room with a unique name.
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body CreateRoomRequest true "Room data"
// @Success 201 {object} controllers.CreateRoomSuccessResponse "data contains the created room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.CreateRoom(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "room already registered")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// ListRooms godoc
// @Summary List all rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} controllers.ListRoomsSuccessResponse "data is an array of rooms"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}
