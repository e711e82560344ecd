package models

// Category groups stock-keeping units across inventory items, meal
// ingredients, and provisioning list items. It is part of the identity key,
// so two rows with different categories are never the same product.
type Category string

const (
	CategoryFood         Category = "FOOD"
	CategoryBeverages    Category = "BEVERAGES"
	CategoryCleaning     Category = "CLEANING"
	CategoryToiletries   Category = "TOILETRIES"
	CategoryDeckSupplies Category = "DECK_SUPPLIES"
	CategoryGalley       Category = "GALLEY"
	CategorySafety       Category = "SAFETY"
	CategoryOther        Category = "OTHER"
)

var Categories = []Category{
	CategoryFood,
	CategoryBeverages,
	CategoryCleaning,
	CategoryToiletries,
	CategoryDeckSupplies,
	CategoryGalley,
	CategorySafety,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
