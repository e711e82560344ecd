package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewishowell/yacht-provisioning/models"
)

func ing(name string, category models.Category, qty float64, unit string) models.MealIngredient {
	return models.MealIngredient{Name: name, Category: category, Quantity: qty, Unit: unit}
}

func TestAggregateIngredientsSumsSharedIdentity(t *testing.T) {
	pancakes := models.Meal{Name: "Pancakes", Ingredients: []models.MealIngredient{
		ing("Flour", models.CategoryFood, 1, "kg"),
		ing("Milk", models.CategoryBeverages, 0.5, "L"),
	}}
	bread := models.Meal{Name: "Bread", Ingredients: []models.MealIngredient{
		ing("Flour", models.CategoryFood, 1.5, "kg"),
	}}

	required := AggregateIngredients([]models.Meal{pancakes, bread})
	require.Len(t, required, 2)

	assert.Equal(t, "Flour", required[0].Identity.Name)
	assert.Equal(t, 2.5, required[0].Quantity)
	assert.Equal(t, "Milk", required[1].Identity.Name)
	assert.Equal(t, 0.5, required[1].Quantity)
}

func TestAggregateIngredientsTotalsCommute(t *testing.T) {
	a := models.Meal{Ingredients: []models.MealIngredient{
		ing("Flour", models.CategoryFood, 1, "kg"),
		ing("Eggs", models.CategoryFood, 2, "dozen"),
	}}
	b := models.Meal{Ingredients: []models.MealIngredient{
		ing("Eggs", models.CategoryFood, 1, "dozen"),
		ing("Flour", models.CategoryFood, 0.5, "kg"),
	}}

	forward := AggregateIngredients([]models.Meal{a, b})
	reverse := AggregateIngredients([]models.Meal{b, a})

	byIdentity := func(reqs []Requirement) map[Identity]float64 {
		out := make(map[Identity]float64, len(reqs))
		for _, r := range reqs {
			out[r.Identity] = r.Quantity
		}
		return out
	}
	assert.Equal(t, byIdentity(forward), byIdentity(reverse))
	assert.Equal(t, 1.5, byIdentity(forward)[Identity{Name: "Flour", Category: models.CategoryFood, Unit: "kg"}])
	assert.Equal(t, 3.0, byIdentity(forward)[Identity{Name: "Eggs", Category: models.CategoryFood, Unit: "dozen"}])
}

func TestAggregateIngredientsKeepsDistinctUnitsApart(t *testing.T) {
	meal := models.Meal{Ingredients: []models.MealIngredient{
		ing("Sugar", models.CategoryFood, 500, "g"),
		ing("Sugar", models.CategoryFood, 1, "kg"),
	}}

	required := AggregateIngredients([]models.Meal{meal})
	assert.Len(t, required, 2)
}

func TestAggregateIngredientsEmpty(t *testing.T) {
	assert.Empty(t, AggregateIngredients(nil))
	assert.Empty(t, AggregateIngredients([]models.Meal{{Name: "Bare"}}))
}
