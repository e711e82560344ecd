package services

import (
	"strconv"
	"strings"
	"time"
)

// ExportListCSV renders a list as CSV in item creation order. Every value is
// double-quoted, matching the format established by the original export.
func (p *Provisioner) ExportListCSV(userID, listID string) (string, error) {
	list, err := loadList(p.db, userID, listID)
	if err != nil {
		return "", err
	}

	rows := [][]string{
		{"Name", "Category", "Quantity", "Unit", "Type", "Purchased", "Purchased At"},
	}
	for _, item := range list.Items {
		purchased := "No"
		purchasedAt := ""
		if item.Purchased {
			purchased = "Yes"
		}
		if item.PurchasedAt != nil {
			purchasedAt = item.PurchasedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			item.Name,
			string(item.Category),
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			item.Unit,
			string(item.ItemType),
			purchased,
			purchasedAt,
		})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String(), nil
}
