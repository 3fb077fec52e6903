// Package validate implements the shallow form checks performed before a
// record is posted: required fields, non-negative numbers, a stock ceiling
// for sales and well-formed dates.
package validate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-ports/bizdesk/internal/models"
)

const dateLayout = "2006-01-02"

// FieldError describes one problem with one field.
type FieldError struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

func (f FieldError) String() string { return f.Field + " " + f.Problem }

// Error collects every problem found in a form.
type Error struct {
	Form     string
	Problems []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return e.Form + ": " + strings.Join(parts, "; ")
}

// Has reports whether field has a recorded problem.
func (e *Error) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

type checker struct {
	form     string
	problems []FieldError
}

func newChecker(form string) *checker { return &checker{form: form} }

func (c *checker) add(field, format string, args ...any) {
	c.problems = append(c.problems, FieldError{Field: field, Problem: fmt.Sprintf(format, args...)})
}

func (c *checker) text(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.add(field, "is required")
	}
}

func (c *checker) id(field string, v models.ID) {
	if strings.TrimSpace(v.String()) == "" {
		c.add(field, "is required")
	}
}

func (c *checker) nonNegative(field string, v models.Amount) {
	if v.IsNegative() {
		c.add(field, "must not be negative")
	}
}

func (c *checker) optionalNonNegative(field string, v *models.Amount) {
	if v != nil {
		c.nonNegative(field, *v)
	}
}

func (c *checker) positive(field string, v models.Amount) {
	switch {
	case v.IsNegative():
		c.add(field, "must not be negative")
	case v.IsZero():
		c.add(field, "is required")
	}
}

func (c *checker) date(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.add(field, "is required")
		return
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		c.add(field, "must be a date (YYYY-MM-DD)")
	}
}

func (c *checker) err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return &Error{Form: c.form, Problems: c.problems}
}

// ---------------------------------------------------------------------------
// Forms
// ---------------------------------------------------------------------------

// Client checks a client form.
func Client(in *models.ClientInput) error {
	c := newChecker("client")
	c.text("name", in.Name)
	c.nonNegative("opening_balance", in.OpeningBalance)
	return c.err()
}

// Vendor checks a vendor form.
func Vendor(in *models.VendorInput) error {
	c := newChecker("vendor")
	c.text("name", in.Name)
	c.nonNegative("opening_balance", in.OpeningBalance)
	return c.err()
}

// Product checks a product form.
func Product(in *models.ProductInput) error {
	c := newChecker("product")
	c.text("name", in.Name)
	c.nonNegative("weight", in.Weight)
	return c.err()
}

// Bank checks a bank form.
func Bank(in *models.BankInput) error {
	c := newChecker("bank")
	c.text("bank_name", in.BankName)
	c.nonNegative("opening_balance", in.OpeningBalance)
	return c.err()
}

// Sale checks a sale form. available is the selected product's stock; when
// non-nil the sale quantity may not exceed it.
func Sale(in *models.SaleInput, available *models.Amount) error {
	c := newChecker("sale")
	c.id("client_id", in.ClientID)
	c.id("product_id", in.ProductID)

	switch in.ProductType {
	case models.ProductLoose, "":
		c.positive("quantity", in.Quantity)
		c.nonNegative("price_per_kg", in.PricePerKg)
	case models.ProductReady:
		if in.DozensPerBox == nil || in.DozensPerBox.IsZero() {
			c.add("dozens_per_box", "is required")
		}
		if in.TotalBoxes == nil || in.TotalBoxes.IsZero() {
			c.add("total_boxes", "is required")
		}
		c.optionalNonNegative("pieces", in.Pieces)
		c.optionalNonNegative("grams_per_piece", in.GramsPerPiece)
		c.optionalNonNegative("rate_per_gram", in.RatePerGram)
		c.optionalNonNegative("packing_cost", in.PackingCost)
		c.optionalNonNegative("dozens_per_box", in.DozensPerBox)
		c.optionalNonNegative("total_boxes", in.TotalBoxes)
	default:
		c.add("product_type", "must be %q or %q", models.ProductLoose, models.ProductReady)
	}
	c.nonNegative("total_price", in.TotalPrice)

	if available != nil && in.Quantity.GreaterThan(available.Decimal) {
		c.add("quantity", "cannot exceed available quantity (%skg)", available.String())
	}
	return c.err()
}

// Purchase checks a purchase order form.
func Purchase(in *models.PurchaseInput) error {
	c := newChecker("purchase")
	c.id("vendor_id", in.VendorID)
	c.id("product_id", in.ProductID)
	c.positive("quantity", in.Quantity)
	c.nonNegative("price_per_kg", in.PricePerKg)
	c.nonNegative("total_price", in.TotalPrice)
	return c.err()
}

// Payment checks a vendor payment form.
func Payment(in *models.PaymentInput) error {
	c := newChecker("payment")
	c.id("vendor_id", in.VendorID)
	c.id("bank_id", in.BankID)
	c.positive("amount", in.Amount)
	return c.err()
}

// Receipt checks a client receipt form.
func Receipt(in *models.ReceiptInput) error {
	c := newChecker("receipt")
	c.id("client_id", in.ClientID)
	c.id("bank_id", in.BankID)
	c.positive("amount", in.Amount)
	return c.err()
}

// Employee checks an employee form.
func Employee(in *models.EmployeeInput) error {
	c := newChecker("employee")
	c.text("name", in.Name)
	c.nonNegative("salary", in.Salary)
	return c.err()
}

// Salary checks a salary form. Month must already be normalised with
// NormalizeMonth.
func Salary(in *models.SalaryInput) error {
	c := newChecker("salary")
	c.id("employee_id", in.EmployeeID)
	c.id("bank_id", in.BankID)
	c.positive("amount", in.Amount)
	c.date("month", in.Month)
	c.date("payment_date", in.PaymentDate)
	if !slices.Contains(models.ValidSalaryStatuses, in.Status) {
		c.add("status", "must be one of %s", strings.Join(models.ValidSalaryStatuses, ", "))
	}
	return c.err()
}

// Expense checks an expense form.
func Expense(in *models.ExpenseInput) error {
	c := newChecker("expense")
	c.id("category_id", in.CategoryID)
	c.id("bank_id", in.BankID)
	c.positive("amount", in.Amount)
	c.date("date", in.Date)
	return c.err()
}

// Category checks an expense category form.
func Category(in *models.CategoryInput) error {
	c := newChecker("category")
	c.text("name", in.Name)
	return c.err()
}

// ---------------------------------------------------------------------------
// Normalisation
// ---------------------------------------------------------------------------

// NormalizeMonth turns a salary month ("2024-03" or any date inside the
// month) into the first day of that month, which is what salaries.php stores.
func NormalizeMonth(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.Format(dateLayout), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("month %q must be YYYY-MM", s)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout), nil
}

// NormalizeStatus lowercases s and defaults it to pending.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.SalaryPending
	}
	return s
}
