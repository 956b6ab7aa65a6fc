package handler

import (
	balanceapp "github.com/erp/financial-accounting/internal/application/balance"
	"github.com/gin-gonic/gin"
)

// TrialBalanceHandler handles trial balance API endpoints
type TrialBalanceHandler struct {
	BaseHandler
	service *balanceapp.TrialBalanceService
}

// NewTrialBalanceHandler creates a new TrialBalanceHandler
func NewTrialBalanceHandler(service *balanceapp.TrialBalanceService) *TrialBalanceHandler {
	return &TrialBalanceHandler{service: service}
}

// BuildTrialBalance godoc
//
//	@ID				buildTrialBalance
//	@Summary		Build a trial balance
//	@Description	Aggregates posting movements into the requested trial balance variant
//	@Tags			balance-engine
//	@Accept			json
//	@Produce		json
//	@Param			request	body		balanceapp.TrialBalanceRequest	true	"Trial balance command"
//	@Success		200		{object}	APIResponse[balanceapp.TrialBalanceResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/balance-engine/trial-balance [post]
func (h *TrialBalanceHandler) BuildTrialBalance(c *gin.Context) {
	var req balanceapp.TrialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.BuildTrialBalance(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetColumns godoc
//
//	@ID				getTrialBalanceColumns
//	@Summary		Describe trial balance columns
//	@Description	Returns the column schema a trial balance variant produces for the given flags
//	@Tags			balance-engine
//	@Produce		json
//	@Param			type				query		string	true	"Trial balance type"	example(Balanza)
//	@Param			valuateBalances		query		bool	false	"Valuate balances"
//	@Param			withAverageBalance	query		bool	false	"Include average balance"
//	@Param			showCascadeBalances	query		bool	false	"Cascade balances"
//	@Param			returnLedgerColumn	query		bool	false	"Include ledger column"
//	@Param			withSectorization	query		bool	false	"Include sector column"
//	@Success		200					{object}	APIResponse[[]balance.Column]
//	@Failure		400					{object}	ErrorResponse
//	@Failure		422					{object}	ErrorResponse
//	@Router			/balance-engine/trial-balance/columns [get]
func (h *TrialBalanceHandler) GetColumns(c *gin.Context) {
	var req balanceapp.ColumnsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	columns, err := h.service.Columns(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, columns)
}

// RegisterRoutes mounts the trial balance endpoints on rg
func (h *TrialBalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/balance-engine/trial-balance")
	g.POST("", h.BuildTrialBalance)
	g.GET("/columns", h.GetColumns)
}
