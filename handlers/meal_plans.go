package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
	"github.com/lewishowell/yacht-provisioning/services"
)

type createMealPlanRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type updateMealPlanRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type addPlannedMealRequest struct {
	MealID string      `json:"mealId" binding:"required"`
	Date   string      `json:"date" binding:"required"`
	Slot   models.Slot `json:"slot" binding:"required,oneof=breakfast lunch dinner"`
}

// ListMealPlans returns the user's plans, latest start date first, planned
// meals in date/slot order.
func (a *API) ListMealPlans(c *gin.Context) {
	var plans []models.MealPlan
	err := a.db.Preload("PlannedMeals", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC, slot ASC")
	}).Preload("PlannedMeals.Meal").
		Where("user_id = ?", currentUserID(c)).Order("start_date DESC").Find(&plans).Error
	if err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (a *API) GetMealPlan(c *gin.Context) {
	plan, err := a.findMealPlan(c, true)
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (a *API) CreateMealPlan(c *gin.Context) {
	var req createMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
		return
	}

	plan := models.MealPlan{
		UserID:       currentUserID(c),
		Name:         req.Name,
		StartDate:    start,
		EndDate:      end,
		PlannedMeals: []models.PlannedMeal{},
	}
	if err := a.db.Create(&plan).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (a *API) UpdateMealPlan(c *gin.Context) {
	var req updateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := a.findMealPlan(c, false)
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
			return
		}
		updates["start_date"] = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
			return
		}
		updates["end_date"] = end
	}
	if len(updates) > 0 {
		if err := a.db.Model(plan).Updates(updates).Error; err != nil {
			serviceError(c, err, "Meal plan not found")
			return
		}
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteMealPlan removes a plan and its planned meals; referenced meals are
// untouched.
func (a *API) DeleteMealPlan(c *gin.Context) {
	plan, err := a.findMealPlan(c, false)
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", plan.ID).Delete(&models.PlannedMeal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MealPlan{}, "id = ?", plan.ID).Error
	})
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddPlannedMeal places one of the user's meals into a date and slot.
// Several meals may share a slot.
func (a *API) AddPlannedMeal(c *gin.Context) {
	var req addPlannedMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := a.findMealPlan(c, false)
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	var meal models.Meal
	err = a.db.Where("id = ? AND user_id = ?", req.MealID, currentUserID(c)).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if err != nil {
		serviceError(c, err, "Meal not found")
		return
	}

	planned := models.PlannedMeal{
		MealPlanID: plan.ID,
		MealID:     meal.ID,
		Date:       date,
		Slot:       req.Slot,
	}
	if err := a.db.Create(&planned).Error; err != nil {
		serviceError(c, err, "")
		return
	}
	planned.Meal = &meal
	c.JSON(http.StatusCreated, planned)
}

func (a *API) RemovePlannedMeal(c *gin.Context) {
	plan, err := a.findMealPlan(c, false)
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}

	result := a.db.Where("id = ? AND meal_plan_id = ?", c.Param("plannedMealId"), plan.ID).
		Delete(&models.PlannedMeal{})
	if result.Error != nil {
		serviceError(c, result.Error, "Planned meal not found")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Planned meal not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateList derives a provisioning list from the plan's aggregated
// ingredient needs. No shortfalls is a successful no-op.
func (a *API) GenerateList(c *gin.Context) {
	list, err := a.provisioner.GeneratePlanList(currentUserID(c), c.Param("id"))
	if errors.Is(err, services.ErrNothingToGenerate) {
		c.JSON(http.StatusOK, gin.H{
			"generated": false,
			"message":   "All planned ingredients are already stocked, nothing to generate",
		})
		return
	}
	if err != nil {
		serviceError(c, err, "Meal plan not found")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (a *API) findMealPlan(c *gin.Context, withMeals bool) (*models.MealPlan, error) {
	query := a.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c))
	if withMeals {
		query = query.Preload("PlannedMeals", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, slot ASC")
		}).Preload("PlannedMeals.Meal.Ingredients")
	}

	var plan models.MealPlan
	err := query.First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
