package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/application/service"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/dto/request"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/dto/response"
)

// ReturnHandler handles return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// List handles GET /api/returns
func (h *ReturnHandler) List(c *gin.Context) {
	returns, err := h.returnService.ListReturns(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, returns)
}

// Get handles GET /api/returns/:id
func (h *ReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid return ID", err)
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ret)
}

// Create handles POST /api/returns
func (h *ReturnHandler) Create(c *gin.Context) {
	var req request.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	items := make([]service.ReturnItemInput, 0, len(req.ItemsReturned))
	for _, item := range req.ItemsReturned {
		items = append(items, service.ReturnItemInput{
			ProductID:        item.ProductID,
			QuantityReturned: item.QuantityReturned,
		})
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), service.CreateReturnInput{
		SaleID:            req.SaleID,
		Items:             items,
		TotalRefundAmount: req.TotalRefundAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, ret)
}
