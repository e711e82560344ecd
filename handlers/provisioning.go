package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
	"github.com/lewishowell/yacht-provisioning/services"
)

type createListRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type updateListRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Status      *models.ListStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE COMPLETED ARCHIVED"`
}

type createListItemRequest struct {
	Name     string           `json:"name" binding:"required,max=200"`
	Category models.Category  `json:"category" binding:"required,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity float64          `json:"quantity" binding:"min=0"`
	Unit     string           `json:"unit" binding:"required,max=50"`
	ItemType *models.ItemType `json:"itemType" binding:"omitempty,oneof=restock trip"`
}

type updateListItemRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category *models.Category `json:"category" binding:"omitempty,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity *float64         `json:"quantity" binding:"omitempty,min=0"`
	Unit     *string          `json:"unit" binding:"omitempty,min=1,max=50"`
}

type addMealItemsRequest struct {
	MealID string `json:"mealId" binding:"required"`
}

// ListProvisioningLists returns all of the user's lists, most recently
// updated first, items included.
func (a *API) ListProvisioningLists(c *gin.Context) {
	var lists []models.ProvisioningList
	err := a.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("user_id = ?", currentUserID(c)).Order("updated_at DESC").Find(&lists).Error
	if err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (a *API) GetProvisioningList(c *gin.Context) {
	list, err := a.findList(c)
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) CreateProvisioningList(c *gin.Context) {
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list := models.ProvisioningList{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ListStatusDraft,
		Items:       []models.ProvisioningListItem{},
	}
	if err := a.db.Create(&list).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (a *API) UpdateProvisioningList(c *gin.Context) {
	var req updateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := a.findList(c)
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		if err := a.db.Model(list).Updates(updates).Error; err != nil {
			serviceError(c, err, "List not found")
			return
		}
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) DeleteProvisioningList(c *gin.Context) {
	list, err := a.findList(c)
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ProvisioningListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) AddListItem(c *gin.Context) {
	var req createListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, err := a.findList(c)
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}

	item := models.ProvisioningListItem{
		ListID:   list.ID,
		Name:     req.Name,
		Category: req.Category,
		Quantity: services.Round2(req.Quantity),
		Unit:     req.Unit,
	}
	if req.ItemType != nil {
		item.ItemType = *req.ItemType
	}
	if err := a.db.Create(&item).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateListItem(c *gin.Context) {
	var req updateListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := a.findListItem(c)
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
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if len(updates) > 0 {
		if err := a.db.Model(item).Updates(updates).Error; err != nil {
			serviceError(c, err, "Item not found")
			return
		}
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteListItem(c *gin.Context) {
	item, err := a.findListItem(c)
	if err != nil {
		serviceError(c, err, "Item not found")
		return
	}
	if err := a.db.Delete(item).Error; err != nil {
		serviceError(c, err, "Item not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// PurchaseListItem marks an item purchased and folds the quantity back into
// the inventory ledger.
func (a *API) PurchaseListItem(c *gin.Context) {
	item, err := a.provisioner.Purchase(currentUserID(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		serviceError(c, err, "Item not found or already purchased")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddRestockItems injects current inventory shortfalls into the list.
func (a *API) AddRestockItems(c *gin.Context) {
	result, err := a.provisioner.AddRestockItems(currentUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddMealItems adds a meal's missing ingredients to the list.
func (a *API) AddMealItems(c *gin.Context) {
	var req addMealItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := a.provisioner.AddMealItems(currentUserID(c), c.Param("id"), req.MealID)
	if err != nil {
		serviceError(c, err, "List or meal not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportList streams the list as a CSV attachment.
func (a *API) ExportList(c *gin.Context) {
	csv, err := a.provisioner.ExportListCSV(currentUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "List not found")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="provisioning-list.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

func (a *API) findList(c *gin.Context) (*models.ProvisioningList, error) {
	var list models.ProvisioningList
	err := a.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (a *API) findListItem(c *gin.Context) (*models.ProvisioningListItem, error) {
	var list models.ProvisioningList
	err := a.db.Select("id").Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var item models.ProvisioningListItem
	err = a.db.Where("id = ? AND list_id = ?", c.Param("itemId"), list.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
