package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/braincarehq/backend/internal/auth"
	"github.com/braincarehq/backend/internal/journal"
)

// JournalHandler serves journal entry CRUD.
type JournalHandler struct {
	journal  *journal.Service
	resolver *auth.Resolver
	logger   *slog.Logger
}

// NewJournalHandler creates a journal handler.
func NewJournalHandler(log *slog.Logger, journalService *journal.Service, resolver *auth.Resolver) *JournalHandler {
	return &JournalHandler{
		journal:  journalService,
		resolver: resolver,
		logger:   log.With(slog.String("handler", "journal")),
	}
}

// Register mounts the journal routes on the Echo instance.
func (h *JournalHandler) Register(e *echo.Echo) {
	group := e.Group("/api/journal-entries")
	group.POST("", h.Save)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.DELETE("/:id", h.Delete)
}

// Save godoc
// @Summary Record a journal entry
// @Tags journal
// @Param payload body journal.SaveRequest true "Journal payload"
// @Success 201 {object} journal.Entry
// @Failure 400 {object} auth.ErrorResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/journal-entries [post]
func (h *JournalHandler) Save(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	var req journal.SaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.journal.Save(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary List the caller's journal entries
// @Tags journal
// @Success 200 {object} journal.ListResponse
// @Failure 401 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/journal-entries [get]
func (h *JournalHandler) List(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	items, err := h.journal.List(c.Request().Context(), subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, journal.ListResponse{JournalEntries: items})
}

// Get godoc
// @Summary Get one of the caller's journal entries
// @Tags journal
// @Param id path int true "Entry id"
// @Success 200 {object} journal.Entry
// @Failure 401 {object} auth.ErrorResponse
// @Failure 403 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/journal-entries/{id} [get]
func (h *JournalHandler) Get(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	id, err := parseEntryID(c)
	if err != nil {
		return err
	}
	entry, err := h.journal.Get(c.Request().Context(), subject, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete one of the caller's journal entries
// @Tags journal
// @Param id path int true "Entry id"
// @Success 204 "No Content"
// @Failure 401 {object} auth.ErrorResponse
// @Failure 403 {object} auth.ErrorResponse
// @Failure 404 {object} auth.ErrorResponse
// @Router /api/journal-entries/{id} [delete]
func (h *JournalHandler) Delete(c echo.Context) error {
	subject, err := requireSubject(c, h.resolver)
	if err != nil {
		return err
	}
	id, err := parseEntryID(c)
	if err != nil {
		return err
	}
	if err := h.journal.Delete(c.Request().Context(), subject, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseEntryID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid entry id")
	}
	return id, nil
}
