package handlers

import (
	"net/http"

	"github.com/SscSPs/pos_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/pos_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/pos_posting_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests for the stock ledger.
type stockHandler struct {
	stockService portssvc.StockLedgerSvcFacade
}

// RegisterStockRoutes registers product stock movement routes.
func RegisterStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockLedgerSvcFacade) {
	h := &stockHandler{stockService: stockService}

	movements := rg.Group("/products/:productID/movements")
	{
		movements.POST("", h.applyMovement)
		movements.GET("", h.listMovements)
	}
}

// applyMovement godoc
// @Summary Record a stock movement
// @Description Changes the stock of a product and appends the movement to its history
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   movement body dto.StockMovementRequest true "Movement details"
// @Success 201 {object} domain.StockMovement
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to apply stock movement"
// @Security BearerAuth
// @Router /products/{productID}/movements [post]
func (h *stockHandler) applyMovement(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	// The path names the product; it is set before binding so the body may omit it.
	req := dto.StockMovementRequest{ProductID: c.Param("productID")}
	if !bindJSON(c, &req, "stock movement") {
		return
	}
	req.ProductID = c.Param("productID")

	movement, err := h.stockService.Apply(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to apply stock movement")
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// listMovements godoc
// @Summary List stock movements
// @Description Lists the movement history of a product, oldest first
// @Tags stock
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.StockMovementResponse
// @Failure 500 {object} map[string]string "Failed to list stock movements"
// @Security BearerAuth
// @Router /products/{productID}/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	productID := c.Param("productID")

	movements, err := h.stockService.ListMovements(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err, "Failed to list stock movements")
		return
	}
	if movements == nil {
		movements = []domain.StockMovement{}
	}
	c.JSON(http.StatusOK, dto.StockMovementResponse{Movements: movements})
}
