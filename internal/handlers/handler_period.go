package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests for financial periods.
type periodHandler struct {
	periodSvc portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodSvc portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodSvc: periodSvc}
}

// registerPeriodRoutes wires the period endpoints into the router group.
func registerPeriodRoutes(rg *gin.RouterGroup, periodSvc portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodSvc)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
		periods.POST("/:periodID/lock", h.lockPeriod)
	}
}

// createPeriod godoc
// @Summary Create a financial period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period"
// @Success 201 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period already exists"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodSvc.CreatePeriod(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create period")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List financial periods
// @Tags periods
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   offset query int false "Offset"
// @Success 200 {array} dto.PeriodResponse
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	periods, err := h.periodSvc.ListPeriods(c.Request.Context(), limit, offset)
	if err != nil {
		respondWithError(c, err, "Failed to list periods")
		return
	}

	responses := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getPeriod godoc
// @Summary Get a financial period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	period, err := h.periodSvc.GetPeriodByID(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve period")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// statusAction runs one of the period status transitions.
func (h *periodHandler) statusAction(c *gin.Context, action func(ctx context.Context, periodID, userID string) error, fallback string) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := action(c.Request.Context(), c.Param("periodID"), userID); err != nil {
		respondWithError(c, err, fallback)
		return
	}

	period, err := h.periodSvc.GetPeriodByID(c.Request.Context(), c.Param("periodID"))
	if err != nil {
		respondWithError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a financial period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	h.statusAction(c, h.periodSvc.ClosePeriod, "Failed to close period")
}

// reopenPeriod godoc
// @Summary Reopen a closed financial period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not closed (locked periods stay locked)"
// @Router /periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	h.statusAction(c, h.periodSvc.ReopenPeriod, "Failed to reopen period")
}

// lockPeriod godoc
// @Summary Lock a closed financial period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /periods/{periodID}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	h.statusAction(c, h.periodSvc.LockPeriod, "Failed to lock period")
}
