package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
)

// AddItemsResult reports what an add-to-existing-list generator did. Added
// may be 0: running a generator twice in a row is a successful no-op.
type AddItemsResult struct {
	List     *models.ProvisioningList `json:"list"`
	Added    int                      `json:"added"`
	MealName string                   `json:"mealName,omitempty"`
}

// restockCandidates returns every inventory item of the user that sits below
// its target, paired with the shortfall quantity.
func restockCandidates(tx *gorm.DB, userID string) ([]models.InventoryItem, []float64, error) {
	var items []models.InventoryItem
	if err := tx.Where("user_id = ? AND target_quantity > 0", userID).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	var candidates []models.InventoryItem
	var gaps []float64
	for _, item := range items {
		if gap := Shortfall(item.TargetQuantity, item.Quantity); gap > 0 {
			candidates = append(candidates, item)
			gaps = append(gaps, gap)
		}
	}
	return candidates, gaps, nil
}

// GenerateRestockList creates a new DRAFT list holding one restock line per
// inventory shortfall. With zero shortfalls no list is created and
// ErrNothingToGenerate is returned.
func (p *Provisioner) GenerateRestockList(userID, name string) (*models.ProvisioningList, error) {
	var list *models.ProvisioningList

	err := p.db.Transaction(func(tx *gorm.DB) error {
		candidates, gaps, err := restockCandidates(tx, userID)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return ErrNothingToGenerate
		}

		if name == "" {
			name = fmt.Sprintf("Restock - %s", time.Now().Format("Jan 2, 2006"))
		}

		plural := "s"
		if len(candidates) == 1 {
			plural = ""
		}
		description := fmt.Sprintf("Auto-generated from %d item%s below target", len(candidates), plural)

		list = &models.ProvisioningList{
			UserID:      userID,
			Name:        name,
			Description: &description,
			Status:      models.ListStatusDraft,
		}
		for i, item := range candidates {
			list.Items = append(list.Items, models.ProvisioningListItem{
				Name:     item.Name,
				Category: item.Category,
				Quantity: gaps[i],
				Unit:     item.Unit,
				ItemType: models.ItemTypeRestock,
			})
		}
		return tx.Create(list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// AddRestockItems injects current inventory shortfalls into an existing
// list, silently skipping identities the list already carries.
func (p *Provisioner) AddRestockItems(userID, listID string) (*AddItemsResult, error) {
	result := &AddItemsResult{}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		list, err := loadList(tx, userID, listID)
		if err != nil {
			return err
		}

		candidates, gaps, err := restockCandidates(tx, userID)
		if err != nil {
			return err
		}

		present := exactIdentities(list.Items)
		for i, item := range candidates {
			id := InventoryIdentity(item)
			if _, ok := present[id]; ok {
				continue
			}
			line := models.ProvisioningListItem{
				ListID:   list.ID,
				Name:     item.Name,
				Category: item.Category,
				Quantity: gaps[i],
				Unit:     item.Unit,
				ItemType: models.ItemTypeRestock,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			list.Items = append(list.Items, line)
			present[id] = struct{}{}
			result.Added++
		}

		result.List = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddMealItems adds a meal's missing ingredients to an existing list as trip
// items. Ingredients are matched against inventory case-insensitively;
// identities already on the list are skipped.
func (p *Provisioner) AddMealItems(userID, listID, mealID string) (*AddItemsResult, error) {
	result := &AddItemsResult{}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		list, err := loadList(tx, userID, listID)
		if err != nil {
			return err
		}

		var meal models.Meal
		err = tx.Preload("Ingredients").Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var inventory []models.InventoryItem
		if err := tx.Where("user_id = ?", userID).Find(&inventory).Error; err != nil {
			return err
		}
		onHand := foldedOnHand(inventory)

		present := exactIdentities(list.Items)
		for _, ing := range meal.Ingredients {
			id := IngredientIdentity(ing)
			gap := Shortfall(ing.Quantity, onHand[id.Folded()])
			if gap == 0 {
				continue
			}
			if _, ok := present[id]; ok {
				continue
			}
			line := models.ProvisioningListItem{
				ListID:   list.ID,
				Name:     ing.Name,
				Category: ing.Category,
				Quantity: gap,
				Unit:     ing.Unit,
				ItemType: models.ItemTypeTrip,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			list.Items = append(list.Items, line)
			present[id] = struct{}{}
			result.Added++
		}

		result.List = list
		result.MealName = meal.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GeneratePlanList creates a new list from a meal plan: all planned meals'
// ingredients aggregated per identity, reduced by on-hand inventory. An
// empty aggregate or zero shortfalls creates nothing.
func (p *Provisioner) GeneratePlanList(userID, planID string) (*models.ProvisioningList, error) {
	var list *models.ProvisioningList

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var plan models.MealPlan
		err := tx.Preload("PlannedMeals.Meal.Ingredients").
			Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var meals []models.Meal
		for _, pm := range plan.PlannedMeals {
			if pm.Meal != nil {
				meals = append(meals, *pm.Meal)
			}
		}
		required := AggregateIngredients(meals)
		if len(required) == 0 {
			return ErrNothingToGenerate
		}

		var inventory []models.InventoryItem
		if err := tx.Where("user_id = ?", userID).Find(&inventory).Error; err != nil {
			return err
		}
		onHand := foldedOnHand(inventory)

		var items []models.ProvisioningListItem
		for _, req := range required {
			gap := Shortfall(req.Quantity, onHand[req.Identity.Folded()])
			if gap == 0 {
				continue
			}
			items = append(items, models.ProvisioningListItem{
				Name:     req.Identity.Name,
				Category: req.Identity.Category,
				Quantity: gap,
				Unit:     req.Identity.Unit,
				ItemType: models.ItemTypeTrip,
			})
		}
		if len(items) == 0 {
			return ErrNothingToGenerate
		}

		description := fmt.Sprintf("Generated from meal plan %q", plan.Name)
		list = &models.ProvisioningList{
			UserID:      userID,
			Name:        fmt.Sprintf("Meal Plan: %s", plan.Name),
			Description: &description,
			Status:      models.ListStatusDraft,
			Items:       items,
		}
		return tx.Create(list).Error
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// IngredientStock is one line of a meal's check-inventory report.
type IngredientStock struct {
	Ingredient models.MealIngredient `json:"ingredient"`
	OnHand     float64               `json:"onHand"`
	Needed     float64               `json:"needed"`
	InStock    bool                  `json:"inStock"`
}

// CheckMealInventory compares every ingredient of a meal against on-hand
// inventory (case-insensitive identity) and reports the gap per line.
func (p *Provisioner) CheckMealInventory(userID, mealID string) ([]IngredientStock, error) {
	var meal models.Meal
	err := p.db.Preload("Ingredients").Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var inventory []models.InventoryItem
	if err := p.db.Where("user_id = ?", userID).Find(&inventory).Error; err != nil {
		return nil, err
	}
	onHand := foldedOnHand(inventory)

	report := make([]IngredientStock, 0, len(meal.Ingredients))
	for _, ing := range meal.Ingredients {
		have := onHand[IngredientIdentity(ing).Folded()]
		needed := Shortfall(ing.Quantity, have)
		report = append(report, IngredientStock{
			Ingredient: ing,
			OnHand:     have,
			Needed:     needed,
			InStock:    needed == 0,
		})
	}
	return report, nil
}

// loadList fetches a user's list with items in creation order.
func loadList(tx *gorm.DB, userID, listID string) (*models.ProvisioningList, error) {
	var list models.ProvisioningList
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}
