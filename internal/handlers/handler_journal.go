package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries and their workflow.
type journalHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalSvc portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalSvc: journalSvc}
}

// registerJournalRoutes wires the journal endpoints into the router group.
func registerJournalRoutes(rg *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalSvc)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createEntry)
		journals.GET("", h.listEntries)
		journals.GET("/:entryID", h.getEntry)
		journals.PUT("/:entryID", h.updateEntry)
		journals.DELETE("/:entryID", h.deleteEntry)
		journals.POST("/:entryID/submit", h.submitEntry)
		journals.POST("/:entryID/approve", h.approveEntry)
		journals.POST("/:entryID/reject", h.rejectEntry)
		journals.POST("/:entryID/post", h.postEntry)
		journals.POST("/:entryID/reverse", h.reverseEntry)
		journals.POST("/:entryID/generate", h.generateEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a new DRAFT journal entry with its lines; debits and credits must balance
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced request"
// @Failure 422 {object} map[string]string "Account not postable"
// @Router /journals [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a paginated list of entries, newest first, optionally filtered by status
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Cursor from the previous page"
// @Param   status query string false "Filter by status"
// @Success 200 {object} dto.ListEntriesResponse
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalSvc.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /journals/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalSvc.GetEntryByID(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Updates header fields and optionally replaces the line set of a DRAFT entry
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is no longer editable"
// @Router /journals/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a DRAFT entry and its lines; entries past DRAFT cannot be deleted
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Entry is no longer editable"
// @Router /journals/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalSvc.DeleteEntry(c.Request.Context(), c.Param("entryID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// submitEntry godoc
// @Summary Submit a journal entry for approval
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Router /journals/{entryID}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	h.workflowAction(c, h.journalSvc.SubmitEntry, "Failed to submit journal entry")
}

// approveEntry godoc
// @Summary Approve a pending journal entry
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Router /journals/{entryID}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	h.workflowAction(c, h.journalSvc.ApproveEntry, "Failed to approve journal entry")
}

// postEntry godoc
// @Summary Post an approved journal entry to the general ledger
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry already posted or not approved"
// @Failure 422 {object} map[string]string "Period closed or account not postable"
// @Router /journals/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.workflowAction(c, h.journalSvc.PostEntry, "Failed to post journal entry")
}

// generateEntry godoc
// @Summary Generate a journal entry from a recurring template
// @Tags journals
// @Produce  json
// @Param   entryID path string true "Template entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry is not a recurring template"
// @Router /journals/{entryID}/generate [post]
func (h *journalHandler) generateEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.GenerateRecurringEntry(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to generate recurring journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a pending journal entry
// @Description Rejects a PENDING_APPROVAL entry with a mandatory reason; REJECTED is terminal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   rejection body dto.RejectJournalEntryRequest true "Rejection reason"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Invalid state transition"
// @Router /journals/{entryID}/reject [post]
func (h *journalHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RejectJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for rejectEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalSvc.RejectEntry(c.Request.Context(), c.Param("entryID"), userID, req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to reject journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts a mirror entry, then flags the original as reversed
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reversal date and reason"
// @Success 201 {object} dto.JournalEntryResponse "The posted reversal entry"
// @Failure 409 {object} map[string]string "Entry not posted or already reversed"
// @Router /journals/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalSvc.ReverseEntry(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// workflowAction runs one of the single-actor lifecycle transitions.
func (h *journalHandler) workflowAction(c *gin.Context, action func(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error), fallback string) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := action(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
