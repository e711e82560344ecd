package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewishowell/yacht-provisioning/models"
)

func TestCreateMealPlan(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/meal-plans", gin.H{
		"name":      "Med Crossing",
		"startDate": "2026-09-01",
		"endDate":   "2026-09-07",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var plan models.MealPlan
	decode(t, w, &plan)
	assert.Equal(t, "Med Crossing", plan.Name)
	assert.Empty(t, plan.PlannedMeals)
}

func TestCreateMealPlanValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/meal-plans", gin.H{"name": "No Dates"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/meal-plans", gin.H{
		"name": "Bad Date", "startDate": "soon", "endDate": "2026-09-07",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAndRemovePlannedMeal(t *testing.T) {
	env := newTestEnv(t)
	meal := env.createMeal(t, env.user.ID, "Pancakes")

	var plan models.MealPlan
	w := env.do(t, http.MethodPost, "/api/meal-plans", gin.H{
		"name": "Week", "startDate": "2026-09-01", "endDate": "2026-09-07",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &plan)

	w = env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/meals", gin.H{
		"mealId": meal.ID,
		"date":   "2026-09-02",
		"slot":   "dinner",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var planned models.PlannedMeal
	decode(t, w, &planned)
	assert.Equal(t, models.SlotDinner, planned.Slot)
	require.NotNil(t, planned.Meal)
	assert.Equal(t, "Pancakes", planned.Meal.Name)

	// Several meals may share a date and slot.
	w = env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/meals", gin.H{
		"mealId": meal.ID,
		"date":   "2026-09-02",
		"slot":   "dinner",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/meal-plans/"+plan.ID+"/meals/"+planned.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/meal-plans/"+plan.ID+"/meals/"+planned.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPlannedMealValidation(t *testing.T) {
	env := newTestEnv(t)
	other, _ := env.newUser(t, "other")
	otherMeal := env.createMeal(t, other.ID, "Theirs")

	var plan models.MealPlan
	w := env.do(t, http.MethodPost, "/api/meal-plans", gin.H{
		"name": "Week", "startDate": "2026-09-01", "endDate": "2026-09-07",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &plan)

	// Unknown slot.
	w = env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/meals", gin.H{
		"mealId": otherMeal.ID, "date": "2026-09-02", "slot": "brunch",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Another user's meal reads as absent.
	w = env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/meals", gin.H{
		"mealId": otherMeal.ID, "date": "2026-09-02", "slot": "dinner",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Meal not found")
}

func TestDeleteMealPlanKeepsMeals(t *testing.T) {
	env := newTestEnv(t)
	meal := env.createMeal(t, env.user.ID, "Pancakes")

	plan := &models.MealPlan{
		UserID:    env.user.ID,
		Name:      "Week",
		StartDate: parseTestDate(t, "2026-09-01"),
		EndDate:   parseTestDate(t, "2026-09-07"),
		PlannedMeals: []models.PlannedMeal{
			{MealID: meal.ID, Date: parseTestDate(t, "2026-09-01"), Slot: models.SlotLunch},
		},
	}
	require.NoError(t, env.db.Create(plan).Error)

	w := env.do(t, http.MethodDelete, "/api/meal-plans/"+plan.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var plannedCount, mealCount int64
	require.NoError(t, env.db.Model(&models.PlannedMeal{}).
		Where("meal_plan_id = ?", plan.ID).Count(&plannedCount).Error)
	require.NoError(t, env.db.Model(&models.Meal{}).
		Where("id = ?", meal.ID).Count(&mealCount).Error)
	assert.Zero(t, plannedCount)
	assert.Equal(t, int64(1), mealCount)
}

func TestGenerateListEndpoint(t *testing.T) {
	env := newTestEnv(t)
	meal := env.createMeal(t, env.user.ID, "Bread",
		models.MealIngredient{Name: "Flour", Category: models.CategoryFood, Quantity: 2, Unit: "kg"},
	)

	plan := &models.MealPlan{
		UserID:    env.user.ID,
		Name:      "Weekend",
		StartDate: parseTestDate(t, "2026-09-05"),
		EndDate:   parseTestDate(t, "2026-09-06"),
		PlannedMeals: []models.PlannedMeal{
			{MealID: meal.ID, Date: parseTestDate(t, "2026-09-05"), Slot: models.SlotDinner},
		},
	}
	require.NoError(t, env.db.Create(plan).Error)

	w := env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/generate-list", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var list models.ProvisioningList
	decode(t, w, &list)
	assert.Equal(t, "Meal Plan: Weekend", list.Name)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 2.0, list.Items[0].Quantity)
}

func TestGenerateListNothingToGenerate(t *testing.T) {
	env := newTestEnv(t)

	plan := &models.MealPlan{
		UserID:    env.user.ID,
		Name:      "Empty",
		StartDate: parseTestDate(t, "2026-09-05"),
		EndDate:   parseTestDate(t, "2026-09-06"),
	}
	require.NoError(t, env.db.Create(plan).Error)

	w := env.do(t, http.MethodPost, "/api/meal-plans/"+plan.ID+"/generate-list", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Generated bool `json:"generated"`
	}
	decode(t, w, &resp)
	assert.False(t, resp.Generated)
}

func TestMealPlanCrossUser404(t *testing.T) {
	env := newTestEnv(t)
	_, otherToken := env.newUser(t, "other")

	plan := &models.MealPlan{
		UserID:    env.user.ID,
		Name:      "Mine",
		StartDate: parseTestDate(t, "2026-09-01"),
		EndDate:   parseTestDate(t, "2026-09-07"),
	}
	require.NoError(t, env.db.Create(plan).Error)

	w := env.doAs(t, otherToken, http.MethodGet, "/api/meal-plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doAs(t, otherToken, http.MethodPost, "/api/meal-plans/"+plan.ID+"/generate-list", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
