package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"confschedule/internal/delivery/http/helpers"
	"confschedule/internal/domain"
)

// CreatePresentationRequest is the request body for POST /presentations.
type CreatePresentationRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Presenters  []string `json:"presenters"`
}

// Validate implements Validator.
func (c CreatePresentationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(c.Presenters) == 0 {
		errs = append(errs, "at least one presenter is required")
	}
	return errs
}

// UpdatePresentationRequest is the request body for PUT /presentations/{presentationID}.
// Omitted fields are left untouched.
type UpdatePresentationRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Presenters  []string `json:"presenters"`
}

// Validate implements Validator.
func (u UpdatePresentationRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	return errs
}

// PresentationSuccessResponse is the success response envelope for single-presentation operations.
type PresentationSuccessResponse struct {
	Data  *domain.Presentation `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListPresentationsResponse is the data payload for GET /presentations (200).
type ListPresentationsResponse struct {
	Items      []*domain.Presentation `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListPresentationsSuccessResponse is the success response envelope for GET /presentations (200).
type ListPresentationsSuccessResponse struct {
	Data  ListPresentationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// PresentationsByPresenterSuccessResponse is the success response envelope for
// GET /presenters/{presenterID}/presentations (200).
type PresentationsByPresenterSuccessResponse struct {
	Data  []*domain.Presentation `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type PresentationController struct {
	Logger  *slog.Logger
	Service domain.PresentationService
	Query   domain.ScheduleQueryService
}

func NewPresentationController(logger *slog.Logger, svc domain.PresentationService, query domain.ScheduleQueryService) *PresentationController {
	return &PresentationController{
		Logger:  logger,
		Service: svc,
		Query:   query,
	}
}

// CreatePresentation godoc
// @Summary Create a new presentation
// @Description Create a presentation with a title, optional description, and a non-empty list of presenter usernames. Every username must resolve to an existing user with the Presenter role; resolution is all-or-nothing.
// @Tags presentations
// @Accept json
// @Produce json
// @Param presentation body CreatePresentationRequest true "Presentation data"
// @Success 201 {object} controllers.PresentationSuccessResponse "data contains the created presentation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unresolved or wrong-role presenter)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presentations [post]
func (c *PresentationController) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req CreatePresentationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	presentation, err := c.Service.CreatePresentation(r.Context(), req.Title, req.Description, req.Presenters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, presentation)
}

// UpdatePresentation godoc
// @Summary Update a presentation
// @Description Partially update a presentation: provided fields overwrite current values, omitted fields are left untouched. A provided presenter list is re-validated the same way as on creation.
// @Tags presentations
// @Accept json
// @Produce json
// @Param presentationID path string true "Presentation ID (UUID)"
// @Param presentation body UpdatePresentationRequest true "Fields to update"
// @Success 200 {object} controllers.PresentationSuccessResponse "data contains the updated presentation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presentations/{presentationID} [put]
func (c *PresentationController) UpdatePresentation(w http.ResponseWriter, r *http.Request) {
	presentationID := r.PathValue("presentationID")
	if presentationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing presentationID")
		return
	}
	var req UpdatePresentationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.PresentationUpdate{
		Title:              req.Title,
		Description:        req.Description,
		PresenterUsernames: req.Presenters,
	}
	presentation, err := c.Service.UpdatePresentation(r.Context(), presentationID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "presentation not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, presentation)
}

// DeletePresentation godoc
// @Summary Delete a presentation
// @Description Delete a presentation. Its schedule entries and their listener associations are removed as well. Returns the deleted presentation.
// @Tags presentations
// @Produce json
// @Param presentationID path string true "Presentation ID (UUID)"
// @Success 200 {object} controllers.PresentationSuccessResponse "data contains the deleted presentation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presentations/{presentationID} [delete]
func (c *PresentationController) DeletePresentation(w http.ResponseWriter, r *http.Request) {
	presentationID := r.PathValue("presentationID")
	if presentationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing presentationID")
		return
	}
	presentation, err := c.Service.DeletePresentation(r.Context(), presentationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "presentation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, presentation)
}

// ListPresentations godoc
// @Summary List all presentations
// @Description Returns a paginated list of presentations with their presenter sets. Use page and page_size query params.
// @Tags presentations
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListPresentationsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presentations [get]
func (c *PresentationController) ListPresentations(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	presentations, total, err := c.Query.ListPresentations(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPresentationsResponse{Items: presentations, Pagination: meta})
}

// PresentationsByPresenter godoc
// @Summary List presentations by presenter
// @Description Returns all presentations where the given user is a presenter. Fails with 404 if the ID does not resolve to a Presenter-role user.
// @Tags presentations
// @Produce json
// @Param presenterID path string true "Presenter user ID (UUID)"
// @Success 200 {object} controllers.PresentationsByPresenterSuccessResponse "data is an array of presentations"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /presenters/{presenterID}/presentations [get]
func (c *PresentationController) PresentationsByPresenter(w http.ResponseWriter, r *http.Request) {
	presenterID := r.PathValue("presenterID")
	if presenterID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing presenterID")
		return
	}
	presentations, err := c.Query.PresentationsByPresenter(r.Context(), presenterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "presenter not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, presentations)
}
