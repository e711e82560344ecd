package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lewishowell/yacht-provisioning/models"
)

func TestIdentityFolded(t *testing.T) {
	id := Identity{Name: "Olive Oil", Category: models.CategoryFood, Unit: "bottles"}
	folded := id.Folded()

	assert.Equal(t, "olive oil", folded.Name)
	assert.Equal(t, models.CategoryFood, folded.Category)
	assert.Equal(t, "bottles", folded.Unit)
	// The original is untouched.
	assert.Equal(t, "Olive Oil", id.Name)
}

func TestIdentityExactIsCaseSensitive(t *testing.T) {
	a := Identity{Name: "Milk", Category: models.CategoryBeverages, Unit: "L"}
	b := Identity{Name: "milk", Category: models.CategoryBeverages, Unit: "L"}

	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Folded(), b.Folded())
}

func TestIdentityUnitIsOpaque(t *testing.T) {
	kg := Identity{Name: "Flour", Category: models.CategoryFood, Unit: "kg"}
	g := Identity{Name: "Flour", Category: models.CategoryFood, Unit: "g"}

	assert.NotEqual(t, kg, g)
	assert.NotEqual(t, kg.Folded(), g.Folded())
}

func TestIdentityConstructorsAgree(t *testing.T) {
	inv := models.InventoryItem{Name: "Eggs", Category: models.CategoryFood, Unit: "dozen"}
	ing := models.MealIngredient{Name: "Eggs", Category: models.CategoryFood, Unit: "dozen"}
	line := models.ProvisioningListItem{Name: "Eggs", Category: models.CategoryFood, Unit: "dozen"}

	assert.Equal(t, InventoryIdentity(inv), IngredientIdentity(ing))
	assert.Equal(t, IngredientIdentity(ing), ListItemIdentity(line))
}
