package handlers

import (
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles read-only HTTP requests against the general ledger.
type ledgerHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerSvc portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerSvc: ledgerSvc}
}

// registerLedgerRoutes wires the ledger endpoints into the router group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerSvc)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.listRows)
		ledger.GET("/entry/:entryID", h.getRowsForEntry)
	}
}

// listRows godoc
// @Summary List general ledger rows for an account
// @Tags ledger
// @Produce  json
// @Param   accountID query string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListLedgerRowsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /ledger [get]
func (h *ledgerHandler) listRows(c *gin.Context) {
	var params dto.ListLedgerRowsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerSvc.ListRowsByAccount(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list ledger rows")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getRowsForEntry godoc
// @Summary Get the ledger rows produced by posting an entry
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.LedgerRowResponse
// @Router /ledger/entry/{entryID} [get]
func (h *ledgerHandler) getRowsForEntry(c *gin.Context) {
	rows, err := h.ledgerSvc.GetRowsForEntry(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve ledger rows")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerRowResponses(rows))
}
