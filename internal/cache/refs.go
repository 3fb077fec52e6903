package cache

import (
	"encoding/json"

	"github.com/go-ports/bizdesk/internal/models"
)

func build[T any](kind Kind, rows []T, describe func(*T) (models.ID, string, string)) []Ref {
	out := make([]Ref, 0, len(rows))
	for i := range rows {
		id, name, detail := describe(&rows[i])
		raw, _ := json.Marshal(&rows[i])
		out = append(out, Ref{Kind: kind, ID: id, Name: name, Detail: detail, Raw: raw})
	}
	return out
}

// ClientRefs converts clients; detail is the firm name.
func ClientRefs(rows []models.Client) []Ref {
	return build(KindClient, rows, func(c *models.Client) (models.ID, string, string) {
		return c.ID, c.Name, c.FirmName
	})
}

// VendorRefs converts vendors; detail is the firm name.
func VendorRefs(rows []models.Vendor) []Ref {
	return build(KindVendor, rows, func(v *models.Vendor) (models.ID, string, string) {
		return v.ID, v.Name, v.FirmName
	})
}

// ProductRefs converts products; detail is the available stock.
func ProductRefs(rows []models.Product) []Ref {
	return build(KindProduct, rows, func(p *models.Product) (models.ID, string, string) {
		return p.ID, p.Name, p.Quantity.String() + " kg"
	})
}

// BankRefs converts banks; detail is the balance.
func BankRefs(rows []models.Bank) []Ref {
	return build(KindBank, rows, func(b *models.Bank) (models.ID, string, string) {
		return b.ID, b.BankName, b.Balance.Fixed(2)
	})
}

// EmployeeRefs converts employees; detail is the designation.
func EmployeeRefs(rows []models.Employee) []Ref {
	return build(KindEmployee, rows, func(e *models.Employee) (models.ID, string, string) {
		return e.ID, e.Name, e.Designation
	})
}

// CategoryRefs converts expense categories.
func CategoryRefs(rows []models.ExpenseCategory) []Ref {
	return build(KindCategory, rows, func(c *models.ExpenseCategory) (models.ID, string, string) {
		return c.ID, c.Name, ""
	})
}

// Names maps id to name for the refs of one kind.
func Names(refs []Ref) map[models.ID]string {
	out := make(map[models.ID]string, len(refs))
	for _, r := range refs {
		out[r.ID] = r.Name
	}
	return out
}
