package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
	"github.com/lewishowell/yacht-provisioning/services"
)

type createInventoryItemRequest struct {
	Name             string          `json:"name" binding:"required,max=200"`
	Category         models.Category `json:"category" binding:"required,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity         float64         `json:"quantity" binding:"min=0"`
	TargetQuantity   *float64        `json:"targetQuantity" binding:"omitempty,min=0"`
	Unit             string          `json:"unit" binding:"required,max=50"`
	ExpiryDate       *string         `json:"expiryDate"`
	ReorderThreshold *float64        `json:"reorderThreshold" binding:"omitempty,min=0"`
	Notes            *string         `json:"notes" binding:"omitempty,max=1000"`
}

type updateInventoryItemRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category         *models.Category `json:"category" binding:"omitempty,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity         *float64         `json:"quantity" binding:"omitempty,min=0"`
	TargetQuantity   *float64         `json:"targetQuantity" binding:"omitempty,min=0"`
	Unit             *string          `json:"unit" binding:"omitempty,min=1,max=50"`
	ExpiryDate       *string          `json:"expiryDate"`
	ReorderThreshold *float64         `json:"reorderThreshold" binding:"omitempty,min=0"`
	Notes            *string          `json:"notes" binding:"omitempty,max=1000"`
}

// parseDate accepts a date-only or RFC3339 timestamp string.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

var inventorySortColumns = map[string]string{
	"name":           "name",
	"category":       "category",
	"quantity":       "quantity",
	"targetQuantity": "target_quantity",
	"unit":           "unit",
	"expiryDate":     "expiry_date",
	"createdAt":      "created_at",
}

// ListInventory returns a paginated, filterable view of the user's ledger.
func (a *API) ListInventory(c *gin.Context) {
	userID := currentUserID(c)

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := a.db.Model(&models.InventoryItem{}).Where("user_id = ?", userID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if category := models.Category(c.Query("category")); category != "" {
		if !category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		query = query.Where("category = ?", category)
	}

	sortColumn, ok := inventorySortColumns[c.DefaultQuery("sort", "name")]
	if !ok {
		sortColumn = "name"
	}
	direction := "ASC"
	if c.Query("order") == "desc" {
		direction = "DESC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		serviceError(c, err, "")
		return
	}

	var items []models.InventoryItem
	err := query.Order(fmt.Sprintf("%s %s", sortColumn, direction)).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error
	if err != nil {
		serviceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

func (a *API) GetInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	err := a.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		serviceError(c, err, "Item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) CreateInventoryItem(c *gin.Context) {
	var req createInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item := models.InventoryItem{
		UserID:   currentUserID(c),
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if req.TargetQuantity != nil {
		item.TargetQuantity = *req.TargetQuantity
	}
	if req.ReorderThreshold != nil {
		item.ReorderThreshold = *req.ReorderThreshold
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiryDate"})
			return
		}
		item.ExpiryDate = &expiry
	}

	if err := a.db.Create(&item).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateInventoryItem(c *gin.Context) {
	var req updateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var item models.InventoryItem
	err := a.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		serviceError(c, err, "Item not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Quantity != nil {
		updates["quantity"] = services.Round2(*req.Quantity)
	}
	if req.TargetQuantity != nil {
		updates["target_quantity"] = services.Round2(*req.TargetQuantity)
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.ReorderThreshold != nil {
		updates["reorder_threshold"] = *req.ReorderThreshold
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.ExpiryDate != nil {
		// An empty string clears the expiry date.
		if *req.ExpiryDate == "" {
			updates["expiry_date"] = nil
		} else {
			expiry, err := parseDate(*req.ExpiryDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiryDate"})
				return
			}
			updates["expiry_date"] = expiry
		}
	}

	if len(updates) > 0 {
		if err := a.db.Model(&item).Updates(updates).Error; err != nil {
			serviceError(c, err, "Item not found")
			return
		}
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteInventoryItem(c *gin.Context) {
	result := a.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).
		Delete(&models.InventoryItem{})
	if result.Error != nil {
		serviceError(c, result.Error, "Item not found")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// LowStock lists every item sitting below its target quantity.
func (a *API) LowStock(c *gin.Context) {
	items, err := a.provisioner.LowStockItems(currentUserID(c))
	if err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// DashboardStats returns the read-only rollup for the dashboard.
func (a *API) DashboardStats(c *gin.Context) {
	stats, err := a.provisioner.Dashboard(currentUserID(c))
	if err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, stats)
}

type generateShoppingListRequest struct {
	Name string `json:"name" binding:"omitempty,max=200"`
}

// GenerateShoppingList derives a new restock list from inventory shortfalls.
// Zero shortfalls is a successful no-op, not an error.
func (a *API) GenerateShoppingList(c *gin.Context) {
	var req generateShoppingListRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	list, err := a.provisioner.GenerateRestockList(currentUserID(c), req.Name)
	if errors.Is(err, services.ErrNothingToGenerate) {
		c.JSON(http.StatusOK, gin.H{
			"generated": false,
			"message":   "No items below target, nothing to generate",
		})
		return
	}
	if err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
