package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/SscSPs/pos_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests that write to the general ledger.
type postingHandler struct {
	journalService portssvc.JournalSvcFacade
	refundService  portssvc.RefundSvc
}

func newPostingHandler(journalService portssvc.JournalSvcFacade, refundService portssvc.RefundSvc) *postingHandler {
	return &postingHandler{
		journalService: journalService,
		refundService:  refundService,
	}
}

// RegisterPostingRoutes registers transaction posting, refund and journal entry routes.
func RegisterPostingRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, refundService portssvc.RefundSvc) {
	h := newPostingHandler(journalService, refundService)

	transactions := rg.Group("/transactions/:transactionID")
	{
		transactions.POST("/post", h.postTransaction)
		transactions.POST("/refunds", h.refundTransaction)
	}
	rg.GET("/journal-entries/:entryID", h.getJournalEntry)
}

// postTransaction godoc
// @Summary Post a transaction to the general ledger
// @Description Posts a completed sale or purchase and records its stock movements. Posting an already posted transaction answers 200 with the existing entry; a fresh posting answers 201.
// @Tags posting
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 201 {object} dto.PostResult "Entry created"
// @Success 200 {object} dto.PostResult "Transaction was already posted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction not postable or concurrency conflict"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID}/post [post]
func (h *postingHandler) postTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	transactionID := c.Param("transactionID")

	result, err := h.journalService.Post(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to post transaction")
		return
	}

	status := http.StatusCreated
	if result.NoOp {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// refundTransaction godoc
// @Summary Refund a posted sale
// @Description Creates a return transaction and its reversing entry. An empty body refunds the remaining amount.
// @Tags posting
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Sale transaction ID"
// @Param   refund body dto.RefundRequest false "Refund amount and reason"
// @Success 201 {object} dto.RefundResult
// @Failure 400 {object} map[string]string "Invalid request format or refund amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction cannot be refunded"
// @Failure 500 {object} map[string]string "Failed to refund transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID}/refunds [post]
func (h *postingHandler) refundTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for refund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.TransactionID = c.Param("transactionID")

	result, err := h.refundService.Reverse(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to refund transaction")
		return
	}

	logger.Info("Refund recorded",
		slog.String("transaction_id", req.TransactionID),
		slog.String("entry_number", result.Entry.EntryNumber))
	c.JSON(http.StatusCreated, result)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry and its lines by entry ID
// @Tags posting
// @Produce  json
// @Param   entryID path string true "Journal entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *postingHandler) getJournalEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}
