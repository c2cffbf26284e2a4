package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for notes. Update and Delete answer with
// a bare JSON string, the other mutations with {"message": ...}.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /notes.
//
// @Summary      List notes with their owner's username
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      404  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(views))
}

// Create handles POST /notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "New note"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Create(c.Request().Context(), ports.CreateNoteInput{
		Owner: req.User,
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// Update handles PATCH /notes.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateNoteRequest  true  "Replacement fields"
// @Success      200   {string}  string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /notes [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Update(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		Owner:     req.User,
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// Delete handles DELETE /notes.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteByIDRequest  true  "Note id"
// @Success      200   {string}  string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteByIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.service.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}
