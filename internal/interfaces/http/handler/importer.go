package handler

import (
	"errors"
	"io"

	"github.com/erp/financial-accounting/internal/application/importer"
	"github.com/gin-gonic/gin"
)

// VoucherImporterHandler controls the background voucher importer
type VoucherImporterHandler struct {
	BaseHandler
	importer *importer.Importer
}

// NewVoucherImporterHandler creates a new VoucherImporterHandler
func NewVoucherImporterHandler(imp *importer.Importer) *VoucherImporterHandler {
	return &VoucherImporterHandler{importer: imp}
}

// Start godoc
//
//	@ID				startVoucherImporter
//	@Summary		Start the voucher importer
//	@Description	Starts a background run that posts pending vouchers in batches. An empty body uses the configured defaults.
//	@Tags			vouchers-importer
//	@Accept			json
//	@Produce		json
//	@Param			request	body		importer.StartCommand	false	"Run options"
//	@Success		202		{object}	APIResponse[importer.Status]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/balance-engine/vouchers-importer/start [post]
func (h *VoucherImporterHandler) Start(c *gin.Context) {
	var cmd importer.StartCommand
	if err := c.ShouldBindJSON(&cmd); err != nil && !errors.Is(err, io.EOF) {
		h.ValidationError(c, err)
		return
	}

	status, err := h.importer.Start(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, status)
}

// Stop godoc
//
//	@ID				stopVoucherImporter
//	@Summary		Stop the voucher importer
//	@Description	Asks a running import to stop after its current batch. Stopping an idle importer is a no-op.
//	@Tags			vouchers-importer
//	@Produce		json
//	@Success		200	{object}	APIResponse[importer.Status]
//	@Router			/balance-engine/vouchers-importer/stop [post]
func (h *VoucherImporterHandler) Stop(c *gin.Context) {
	h.Success(c, h.importer.Stop())
}

// Status godoc
//
//	@ID				getVoucherImporterStatus
//	@Summary		Get voucher importer status
//	@Description	Returns the importer state, the last run's counters and the voucher queue totals
//	@Tags			vouchers-importer
//	@Produce		json
//	@Success		200	{object}	APIResponse[importer.Status]
//	@Failure		500	{object}	ErrorResponse
//	@Router			/balance-engine/vouchers-importer/status [get]
func (h *VoucherImporterHandler) Status(c *gin.Context) {
	status, err := h.importer.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// RegisterRoutes mounts the importer endpoints on rg
func (h *VoucherImporterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/balance-engine/vouchers-importer")
	g.POST("/start", h.Start)
	g.POST("/stop", h.Stop)
	g.GET("/status", h.Status)
}
