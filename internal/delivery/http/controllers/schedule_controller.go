package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"confschedule/internal/delivery/http/helpers"
	"confschedule/internal/domain"
)

// SchedulePresentationRequest is the request body for POST /presentations/{presentationID}/schedule.
type SchedulePresentationRequest struct {
	PresenterID string    `json:"presenter_id"`
	RoomID      string    `json:"room_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// Validate implements Validator.
func (s SchedulePresentationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.PresenterID) == "" {
		errs = append(errs, "presenter_id is required")
	}
	if strings.TrimSpace(s.RoomID) == "" {
		errs = append(errs, "room_id is required")
	}
	if s.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if s.EndTime.IsZero() {
		errs = append(errs, "end_time is required")
	}
	if !s.StartTime.IsZero() && !s.EndTime.IsZero() && !s.StartTime.Before(s.EndTime) {
		errs = append(errs, "start_time must be before end_time")
	}
	return errs
}

// RegisterListenerRequest is the request body for POST /registrations.
type RegisterListenerRequest struct {
	Username        string `json:"username"`
	ScheduleEntryID string `json:"schedule_entry_id"`
}

// Validate implements Validator.
func (r RegisterListenerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(r.ScheduleEntryID) == "" {
		errs = append(errs, "schedule_entry_id is required")
	}
	return errs
}

// ScheduleEntrySuccessResponse is the success response envelope for schedule entry operations.
type ScheduleEntrySuccessResponse struct {
	Data  *domain.ScheduleEntry `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// RoomSchedulesSuccessResponse is the success response envelope for GET /schedules (200).
type RoomSchedulesSuccessResponse struct {
	Data  []*domain.RoomSchedule `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.SchedulingService
	Query   domain.ScheduleQueryService
}

func NewScheduleController(logger *slog.Logger, svc domain.SchedulingService, query domain.ScheduleQueryService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
		Query:   query,
	}
}

// SchedulePresentation godoc
// @Summary Schedule a presentation in a room
// @Description Place a presentation into a room for the half-open window [start_time, end_time). The acting presenter must belong to the presentation. Fails with 409 when the window overlaps an existing entry in the same room; of two concurrent overlapping requests exactly one succeeds.
// @Tags schedules
// @Accept json
// @Produce json
// @Param presentationID path string true "Presentation ID (UUID)"
// @Param schedule body SchedulePresentationRequest true "Placement data"
// @Success 201 {object} controllers.ScheduleEntrySuccessResponse "data contains the created schedule entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid window)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (presentation, presenter, or room)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (overlapping entry in the room)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presentations/{presentationID}/schedule [post]
func (c *ScheduleController) SchedulePresentation(w http.ResponseWriter, r *http.Request) {
	presentationID := r.PathValue("presentationID")
	if presentationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing presentationID")
		return
	}
	var req SchedulePresentationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.SchedulePresentation(r.Context(), presentationID, req.PresenterID, req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		case errors.Is(err, domain.ErrScheduleConflict):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "time window overlaps an existing entry in this room")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// RegisterListener godoc
// @Summary Register a listener for a schedule entry
// @Description Attach a Listener-role user to a schedule entry. Registering an already-registered listener is a no-op and still succeeds. A confirmation email is sent when the user has an email address on file.
// @Tags schedules
// @Accept json
// @Produce json
// @Param registration body RegisterListenerRequest true "Registration data"
// @Success 200 {object} controllers.ScheduleEntrySuccessResponse "data contains the entry with its listener set"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (user is not a listener)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (user or schedule entry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [post]
func (c *ScheduleController) RegisterListener(w http.ResponseWriter, r *http.Request) {
	var req RegisterListenerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.RegisterListener(r.Context(), req.Username, req.ScheduleEntryID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		case errors.Is(err, domain.ErrInvalidRole):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "user does not have the listener role")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entry)
}

// SchedulesByRoom godoc
// @Summary List schedules grouped by room
// @Description Returns every room with its schedule entries ordered by start time. Rooms without entries are included with an empty list. Listener sets are resolved on each entry.
// @Tags schedules
// @Produce json
// @Success 200 {object} controllers.RoomSchedulesSuccessResponse "data is an array of room schedules"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [get]
func (c *ScheduleController) SchedulesByRoom(w http.ResponseWriter, r *http.Request) {
	schedules, err := c.Query.SchedulesByRoom(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedules)
}
