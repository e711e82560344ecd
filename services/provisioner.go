package services

import (
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/config"
	"github.com/lewishowell/yacht-provisioning/models"
)

// Provisioner orchestrates the reconciliation logic between the inventory
// ledger, meals, and provisioning lists. It holds the injected database
// handle; all methods scope their queries to a single user.
type Provisioner struct {
	db        *gorm.DB
	syncScope string
}

func NewProvisioner(db *gorm.DB, syncScope string) *Provisioner {
	if syncScope == "" {
		syncScope = config.SyncScopeAll
	}
	return &Provisioner{db: db, syncScope: syncScope}
}

// foldedOnHand sums on-hand inventory quantities per case-folded identity,
// for matching meal ingredients against the pantry.
func foldedOnHand(items []models.InventoryItem) map[Identity]float64 {
	onHand := make(map[Identity]float64, len(items))
	for _, item := range items {
		onHand[InventoryIdentity(item).Folded()] += item.Quantity
	}
	return onHand
}

// exactIdentities collects the exact identity of every line item on a list,
// the dedup set for generator output.
func exactIdentities(items []models.ProvisioningListItem) map[Identity]struct{} {
	present := make(map[Identity]struct{}, len(items))
	for _, item := range items {
		present[ListItemIdentity(item)] = struct{}{}
	}
	return present
}
