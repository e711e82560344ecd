package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
	"github.com/lewishowell/yacht-provisioning/services"
)

type ingredientRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Category models.Category `json:"category" binding:"required,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity float64         `json:"quantity" binding:"required,gt=0"`
	Unit     string          `json:"unit" binding:"required,max=50"`
}

type updateIngredientRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category *models.Category `json:"category" binding:"omitempty,oneof=FOOD BEVERAGES CLEANING TOILETRIES DECK_SUPPLIES GALLEY SAFETY OTHER"`
	Quantity *float64         `json:"quantity" binding:"omitempty,gt=0"`
	Unit     *string          `json:"unit" binding:"omitempty,min=1,max=50"`
}

type createMealRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=1000"`
	Servings    *int                `json:"servings" binding:"omitempty,min=1"`
	Ingredients []ingredientRequest `json:"ingredients" binding:"omitempty,dive"`
}

type updateMealRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Servings    *int    `json:"servings" binding:"omitempty,min=1"`
}

// mealWithPlanCount decorates a meal with how many planned slots reference
// it, for the meal list view.
type mealWithPlanCount struct {
	models.Meal
	PlannedMealCount int64 `json:"plannedMealCount"`
}

// ListMeals returns the user's meals, most recently updated first.
func (a *API) ListMeals(c *gin.Context) {
	var meals []models.Meal
	err := a.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("user_id = ?", currentUserID(c)).Order("updated_at DESC").Find(&meals).Error
	if err != nil {
		serviceError(c, err, "")
		return
	}

	out := make([]mealWithPlanCount, 0, len(meals))
	for _, meal := range meals {
		var count int64
		if err := a.db.Model(&models.PlannedMeal{}).
			Where("meal_id = ?", meal.ID).Count(&count).Error; err != nil {
			serviceError(c, err, "")
			return
		}
		out = append(out, mealWithPlanCount{Meal: meal, PlannedMealCount: count})
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) GetMeal(c *gin.Context) {
	meal, err := a.findMeal(c)
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (a *API) CreateMeal(c *gin.Context) {
	var req createMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal := models.Meal{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Servings:    2,
		Ingredients: []models.MealIngredient{},
	}
	if req.Servings != nil {
		meal.Servings = *req.Servings
	}
	for _, ing := range req.Ingredients {
		meal.Ingredients = append(meal.Ingredients, models.MealIngredient{
			Name:     ing.Name,
			Category: ing.Category,
			Quantity: services.Round2(ing.Quantity),
			Unit:     ing.Unit,
		})
	}

	if err := a.db.Create(&meal).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (a *API) UpdateMeal(c *gin.Context) {
	var req updateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal, err := a.findMeal(c)
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if len(updates) > 0 {
		if err := a.db.Model(meal).Updates(updates).Error; err != nil {
			serviceError(c, err, "Meal not found")
			return
		}
	}
	c.JSON(http.StatusOK, meal)
}

// DeleteMeal removes a meal with its ingredients and any planned-meal
// references to it.
func (a *API) DeleteMeal(c *gin.Context) {
	meal, err := a.findMeal(c)
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.PlannedMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meal{}, "id = ?", meal.ID).Error
	})
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) AddMealIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	meal, err := a.findMeal(c)
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}

	ingredient := models.MealIngredient{
		MealID:   meal.ID,
		Name:     req.Name,
		Category: req.Category,
		Quantity: services.Round2(req.Quantity),
		Unit:     req.Unit,
	}
	if err := a.db.Create(&ingredient).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (a *API) UpdateMealIngredient(c *gin.Context) {
	var req updateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ingredient, err := a.findIngredient(c)
	if err != nil {
		serviceError(c, err, "Ingredient not found")
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
		if err := a.db.Model(ingredient).Updates(updates).Error; err != nil {
			serviceError(c, err, "Ingredient not found")
			return
		}
	}
	c.JSON(http.StatusOK, ingredient)
}

func (a *API) DeleteMealIngredient(c *gin.Context) {
	ingredient, err := a.findIngredient(c)
	if err != nil {
		serviceError(c, err, "Ingredient not found")
		return
	}
	if err := a.db.Delete(ingredient).Error; err != nil {
		serviceError(c, err, "Ingredient not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckMealInventory reports, per ingredient, how much is on hand and how
// much still needs to be bought.
func (a *API) CheckMealInventory(c *gin.Context) {
	report, err := a.provisioner.CheckMealInventory(currentUserID(c), c.Param("id"))
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": report})
}

func (a *API) findMeal(c *gin.Context) (*models.Meal, error) {
	var meal models.Meal
	err := a.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (a *API) findIngredient(c *gin.Context) (*models.MealIngredient, error) {
	meal, err := a.findMeal(c)
	if err != nil {
		return nil, err
	}

	var ingredient models.MealIngredient
	err = a.db.Where("id = ? AND meal_id = ?", c.Param("ingredientId"), meal.ID).
		First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}
