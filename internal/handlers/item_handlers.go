package handlers

import (
	"errors"
	"net/http"

	"shelflife/internal/common"
	"shelflife/internal/repositories"
	"shelflife/internal/services"

	"github.com/labstack/echo/v4"
)

// ItemHandlers handles item CRUD requests
type ItemHandlers struct {
	itemService services.ItemService
}

// NewItemHandlers creates a new item handlers instance
func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

// CreateItemRequest represents the item creation request payload. Dates are
// calendar dates in YYYY-MM-DD form.
type CreateItemRequest struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Quantity          int     `json:"quantity"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
	ExpiryDate        string  `json:"expiry_date"`
	BatchNumber       *string `json:"batch_number"`
	Description       *string `json:"description"`
}

// UpdateItemRequest is a partial update; absent fields stay unchanged.
type UpdateItemRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	Quantity          *int    `json:"quantity"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
	ExpiryDate        *string `json:"expiry_date"`
	BatchNumber       *string `json:"batch_number"`
	Description       *string `json:"description"`
}

// ListItemsRequest represents query parameters for listing items
type ListItemsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// AdjustQuantityRequest carries a signed stock change.
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// CreateItem handles creating a new item
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	input := services.CreateItemInput{
		Name:              req.Name,
		Category:          req.Category,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		BatchNumber:       req.BatchNumber,
		Description:       req.Description,
	}

	if req.ExpiryDate != "" {
		expiry, err := common.ParseDate(req.ExpiryDate, "expiry_date")
		if err != nil {
			return common.SendValidationError(c, map[string]string{"expiry_date": err.Error()})
		}
		input.ExpiryDate = expiry
	}

	item, err := h.itemService.Create(ctx, input)
	if err != nil {
		var validationErrs services.ValidationErrors
		if errors.As(err, &validationErrs) {
			return common.SendValidationError(c, validationErrs.FieldMap())
		}
		return common.SendServerError(c, "Failed to create item")
	}

	return c.JSON(http.StatusCreated, item)
}

// ListItems handles getting a paginated list of items, newest-touched first
func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListItemsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	items, err := h.itemService.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// GetItem handles getting a single item by id
func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return common.SendNotFoundError(c, "Item")
		}
		return common.SendServerError(c, "Failed to get item")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles partial updates to an item
func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	input := services.UpdateItemInput{
		Name:              req.Name,
		Category:          req.Category,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		BatchNumber:       req.BatchNumber,
		Description:       req.Description,
	}

	if req.ExpiryDate != nil {
		expiry, err := common.ParseDate(*req.ExpiryDate, "expiry_date")
		if err != nil {
			return common.SendValidationError(c, map[string]string{"expiry_date": err.Error()})
		}
		input.ExpiryDate = &expiry
	}

	item, err := h.itemService.Update(ctx, id, input)
	if err != nil {
		var validationErrs services.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return common.SendValidationError(c, validationErrs.FieldMap())
		case errors.Is(err, repositories.ErrItemNotFound):
			return common.SendNotFoundError(c, "Item")
		default:
			return common.SendServerError(c, "Failed to update item")
		}
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles removing an item
func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.itemService.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return common.SendNotFoundError(c, "Item")
		}
		return common.SendServerError(c, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}

// AdjustQuantity handles signed stock adjustments; the stored quantity never
// goes below zero.
func (h *ItemHandlers) AdjustQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req AdjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item, err := h.itemService.AdjustQuantity(ctx, id, req.Delta)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return common.SendNotFoundError(c, "Item")
		}
		return common.SendServerError(c, "Failed to adjust quantity")
	}

	return c.JSON(http.StatusOK, item)
}
