package services

import "github.com/lewishowell/yacht-provisioning/models"

// Requirement is an aggregated ingredient need for one identity.
type Requirement struct {
	Identity Identity
	Quantity float64
}

// AggregateIngredients folds meal ingredients by exact identity, summing
// quantities across occurrences. Two meals both needing "Eggs/FOOD/dozen"
// combine into one requirement. Totals are order-insensitive; requirements
// are emitted in first-seen order so generated lists are stable.
func AggregateIngredients(meals []models.Meal) []Requirement {
	totals := make(map[Identity]int)
	var out []Requirement

	for _, meal := range meals {
		for _, ing := range meal.Ingredients {
			id := IngredientIdentity(ing)
			if idx, ok := totals[id]; ok {
				out[idx].Quantity += ing.Quantity
				continue
			}
			totals[id] = len(out)
			out = append(out, Requirement{Identity: id, Quantity: ing.Quantity})
		}
	}

	return out
}
