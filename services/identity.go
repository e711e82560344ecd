package services

import (
	"strings"

	"github.com/lewishowell/yacht-provisioning/models"
)

// Identity is the (name, category, unit) tuple that recognizes "the same
// product" across inventory items, meal ingredients, and list items. Units
// are compared as opaque tokens: "2 kg" and "2000 g" are different products.
//
// Two comparison modes exist, inherited from observed behavior: list-item
// dedup and purchase fold-back match exactly, while meal ingredients are
// matched against inventory with a case-folded name (so "milk" in a recipe
// finds "Milk" in the pantry). Keep the mode choices in the callers aligned
// with that split.
type Identity struct {
	Name     string
	Category models.Category
	Unit     string
}

// Folded returns the case-insensitive form of the identity.
func (id Identity) Folded() Identity {
	id.Name = strings.ToLower(id.Name)
	return id
}

func InventoryIdentity(i models.InventoryItem) Identity {
	return Identity{Name: i.Name, Category: i.Category, Unit: i.Unit}
}

func IngredientIdentity(i models.MealIngredient) Identity {
	return Identity{Name: i.Name, Category: i.Category, Unit: i.Unit}
}

func ListItemIdentity(i models.ProvisioningListItem) Identity {
	return Identity{Name: i.Name, Category: i.Category, Unit: i.Unit}
}
