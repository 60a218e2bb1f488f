package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/SscSPs/pos_posting_engine/internal/middleware"
	"github.com/SscSPs/pos_posting_engine/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests for loan terms and balances.
type loanHandler struct {
	loanService portssvc.LoanLedgerSvcFacade
}

// RegisterLoanRoutes registers loan routes.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanLedgerSvcFacade) {
	h := &loanHandler{loanService: loanService}

	loans := rg.Group("/loans")
	{
		loans.POST("/terms", h.quoteTerms)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/disburse", h.disburse)
		loans.POST("/:loanID/status", h.transitionStatus)
		loans.POST("/:loanID/payments", h.applyPayment)
		loans.GET("/:loanID/payments", h.listPayments)
		loans.POST("/:loanID/payments/:repaymentID/reverse", h.reversePayment)
	}
}

// quoteTerms godoc
// @Summary Quote loan terms
// @Description Computes fee, interest, total and monthly installment without storing anything
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   terms body dto.LoanTermsRequest true "Loan inputs"
// @Success 200 {object} accounting.LoanTerms
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Security BearerAuth
// @Router /loans/terms [post]
func (h *loanHandler) quoteTerms(c *gin.Context) {
	var req dto.LoanTermsRequest
	if !bindJSON(c, &req, "loan terms") {
		return
	}

	terms, err := h.loanService.ComputeTerms(c.Request.Context(), accounting.LoanTermsInput{
		Principal:         req.Principal,
		InterestRate:      req.InterestRate,
		TenureDays:        req.TenureDays,
		InterestType:      req.InterestType,
		ProcessingFeeRate: req.ProcessingFeeRate,
	})
	if err != nil {
		respondWithError(c, err, "Failed to compute loan terms")
		return
	}
	c.JSON(http.StatusOK, terms)
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} domain.Loan
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoan(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// disburse godoc
// @Summary Disburse an approved loan
// @Description Fixes the loan terms, opens the outstanding balance and schedules the first installment
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.DisbursementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Loan is not approved"
// @Failure 500 {object} map[string]string "Failed to disburse loan"
// @Security BearerAuth
// @Router /loans/{loanID}/disburse [post]
func (h *loanHandler) disburse(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	loan, scheduled, err := h.loanService.Disburse(c.Request.Context(), c.Param("loanID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to disburse loan")
		return
	}
	c.JSON(http.StatusOK, dto.DisbursementResponse{Loan: loan, ScheduledRepayment: scheduled})
}

// transitionStatus godoc
// @Summary Change the status of a loan
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   status body dto.StatusTransitionRequest true "Target status"
// @Success 200 {object} domain.Loan
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to change loan status"
// @Security BearerAuth
// @Router /loans/{loanID}/status [post]
func (h *loanHandler) transitionStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.StatusTransitionRequest
	if !bindJSON(c, &req, "loan status") {
		return
	}

	loan, err := h.loanService.TransitionStatus(c.Request.Context(), c.Param("loanID"), req.Status, userID)
	if err != nil {
		respondWithError(c, err, "Failed to change loan status")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// applyPayment godoc
// @Summary Apply a loan payment
// @Description Books a payment and splits it into principal and interest with the chosen allocation policy
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} domain.LoanRepayment
// @Failure 400 {object} map[string]string "Invalid amount or overpayment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Loan does not accept payments or concurrency conflict"
// @Failure 500 {object} map[string]string "Failed to apply loan payment"
// @Security BearerAuth
// @Router /loans/{loanID}/payments [post]
func (h *loanHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if !bindJSON(c, &req, "loan payment") {
		return
	}
	req.LoanID = c.Param("loanID")

	repayment, err := h.loanService.ApplyPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to apply loan payment")
		return
	}

	logger.Info("Loan payment recorded", slog.String("loan_id", req.LoanID), slog.String("payment_reference", repayment.PaymentReference))
	c.JSON(http.StatusCreated, repayment)
}

// listPayments godoc
// @Summary List loan repayments
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.RepaymentListResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to list loan payments"
// @Security BearerAuth
// @Router /loans/{loanID}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	repayments, err := h.loanService.ListRepayments(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondWithError(c, err, "Failed to list loan payments")
		return
	}
	if repayments == nil {
		repayments = []domain.LoanRepayment{}
	}
	c.JSON(http.StatusOK, dto.RepaymentListResponse{Repayments: repayments})
}

// reversePayment godoc
// @Summary Reverse a loan payment
// @Description Marks a completed payment reversed and restores the loan balances
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   repaymentID path string true "Repayment ID"
// @Param   reversal body dto.ReversePaymentRequest true "Reversal reason"
// @Success 200 {object} domain.LoanRepayment
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Repayment not found"
// @Failure 409 {object} map[string]string "Repayment cannot be reversed"
// @Failure 500 {object} map[string]string "Failed to reverse loan payment"
// @Security BearerAuth
// @Router /loans/{loanID}/payments/{repaymentID}/reverse [post]
func (h *loanHandler) reversePayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ReversePaymentRequest
	if !bindJSON(c, &req, "payment reversal") {
		return
	}

	repayment, err := h.loanService.ReversePayment(c.Request.Context(), c.Param("repaymentID"), req.Reason, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse loan payment")
		return
	}
	c.JSON(http.StatusOK, repayment)
}
