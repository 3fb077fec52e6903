// Package report derives the summary figures shown next to listings:
// dashboard totals, expense groups, ledger totals, client and vendor
// statements and salary ledgers. All arithmetic is decimal.
package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-ports/bizdesk/internal/models"
)

// UncategorisedLabel is used for expenses without a category name.
const UncategorisedLabel = "Uncategorised"

func sum[T any](rows []T, amount func(*T) models.Amount) decimal.Decimal {
	total := decimal.Zero
	for i := range rows {
		total = total.Add(amount(&rows[i]).Decimal)
	}
	return total
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// Dashboard is the home-screen summary.
type Dashboard struct {
	Received models.Amount `json:"received"`
	Paid     models.Amount `json:"paid"`
	Stock    models.Amount `json:"total_quantity"`
	Expenses models.Amount `json:"total_expenses"`
	Salaries models.Amount `json:"total_salaries"`
	Balance  models.Amount `json:"balance"`
}

// DashboardInput holds the five listings the dashboard is computed from.
type DashboardInput struct {
	Payments []models.Payment
	Receipts []models.Receipt
	Products []models.Product
	Expenses []models.Expense
	Salaries []models.Salary
}

// NewDashboard computes the summary. Balance is
// received − paid − expenses − salaries; every salary entry counts
// regardless of status.
func NewDashboard(in DashboardInput) Dashboard {
	received := sum(in.Receipts, func(r *models.Receipt) models.Amount { return r.Amount })
	paid := sum(in.Payments, func(p *models.Payment) models.Amount { return p.Amount })
	stock := sum(in.Products, func(p *models.Product) models.Amount { return p.Quantity })
	expenses := sum(in.Expenses, func(e *models.Expense) models.Amount { return e.Amount })
	salaries := sum(in.Salaries, func(s *models.Salary) models.Amount { return s.Amount })

	return Dashboard{
		Received: models.NewAmount(received),
		Paid:     models.NewAmount(paid),
		Stock:    models.NewAmount(stock),
		Expenses: models.NewAmount(expenses),
		Salaries: models.NewAmount(salaries),
		Balance:  models.NewAmount(received.Sub(paid).Sub(expenses).Sub(salaries)),
	}
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// CategoryTotal is one row of the grouped expense view.
type CategoryTotal struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Total    models.Amount    `json:"total"`
	Expenses []models.Expense `json:"expenses,omitempty"`
}

// GroupExpenses groups expenses by category name, highest total first.
// Ties keep alphabetical order.
func GroupExpenses(expenses []models.Expense) []CategoryTotal {
	index := map[string]int{}
	var groups []CategoryTotal
	for _, e := range expenses {
		name := strings.TrimSpace(e.CategoryName)
		if name == "" {
			name = UncategorisedLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryTotal{Category: name})
		}
		g := &groups[i]
		g.Count++
		g.Total = models.NewAmount(g.Total.Add(e.Amount.Decimal))
		g.Expenses = append(g.Expenses, e)
	}

	slices.SortStableFunc(groups, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total.Decimal); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return groups
}

// FilterCategory keeps the expenses of one category (all when category is
// empty) and returns them with their total.
func FilterCategory(expenses []models.Expense, category string) ([]models.Expense, models.Amount) {
	category = strings.TrimSpace(category)
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if category == "" || strings.EqualFold(e.CategoryName, category) {
			out = append(out, e)
		}
	}
	return out, models.NewAmount(sum(out, func(e *models.Expense) models.Amount { return e.Amount }))
}

// ---------------------------------------------------------------------------
// Bank ledger
// ---------------------------------------------------------------------------

// LedgerTotals summarises a bank ledger.
type LedgerTotals struct {
	Credits models.Amount `json:"total_credits"`
	Debits  models.Amount `json:"total_debits"`
	Net     models.Amount `json:"net_change"`
}

// Ledger totals credits and debits. Anything that is not a credit counts as
// a debit.
func Ledger(entries []models.LedgerEntry) LedgerTotals {
	credits, debits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if strings.EqualFold(e.TransactionType, models.Credit) {
			credits = credits.Add(e.Amount.Decimal)
		} else {
			debits = debits.Add(e.Amount.Decimal)
		}
	}
	return LedgerTotals{
		Credits: models.NewAmount(credits),
		Debits:  models.NewAmount(debits),
		Net:     models.NewAmount(credits.Sub(debits)),
	}
}

// ---------------------------------------------------------------------------
// Client statement
// ---------------------------------------------------------------------------

// Statement is the balance position of one client.
type Statement struct {
	TotalSales models.Amount `json:"total_sales"`
	Received   models.Amount `json:"total_received"`
	Remaining  models.Amount `json:"remaining"`
}

// ClientStatement totals the client's sales and receipts. Remaining may be
// negative when the client has paid in advance.
func ClientStatement(sales []models.Sale, receipts []models.Receipt) Statement {
	total := sum(sales, func(s *models.Sale) models.Amount { return s.TotalPrice })
	received := sum(receipts, func(r *models.Receipt) models.Amount { return r.Amount })
	return Statement{
		TotalSales: models.NewAmount(total),
		Received:   models.NewAmount(received),
		Remaining:  models.NewAmount(total.Sub(received)),
	}
}

// VendorPosition is what is owed to one vendor.
type VendorPosition struct {
	TotalPurchases models.Amount `json:"total_purchases"`
	Paid           models.Amount `json:"total_paid"`
	Remaining      models.Amount `json:"remaining"`
}

// VendorStatement totals the purchase orders placed with a vendor against
// the payments made to it.
func VendorStatement(purchases []models.Purchase, payments []models.Payment) VendorPosition {
	total := sum(purchases, func(p *models.Purchase) models.Amount { return p.TotalPrice })
	paid := sum(payments, func(p *models.Payment) models.Amount { return p.Amount })
	return VendorPosition{
		TotalPurchases: models.NewAmount(total),
		Paid:           models.NewAmount(paid),
		Remaining:      models.NewAmount(total.Sub(paid)),
	}
}

// ---------------------------------------------------------------------------
// Salary ledger
// ---------------------------------------------------------------------------

// SalaryLedger is the summary of one employee's salary entries.
type SalaryLedger struct {
	TotalPaid    models.Amount `json:"total_paid"`
	TotalPending models.Amount `json:"total_pending"`
	Salary       models.Amount `json:"salary"`
	Remaining    models.Amount `json:"remaining"`
}

// Salary combines the server summary with the employee's salary.
// Remaining never goes below zero.
func Salary(summary models.SalarySummary, salary models.Amount) SalaryLedger {
	remaining := salary.Sub(summary.TotalPaid.Decimal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return SalaryLedger{
		TotalPaid:    summary.TotalPaid,
		TotalPending: summary.TotalPending,
		Salary:       salary,
		Remaining:    models.NewAmount(remaining),
	}
}

// SummariseSalaries computes a summary locally, for listings fetched without
// one.
func SummariseSalaries(salaries []models.Salary) models.SalarySummary {
	paid, pending := decimal.Zero, decimal.Zero
	for _, s := range salaries {
		if strings.EqualFold(s.Status, models.SalaryPaid) {
			paid = paid.Add(s.Amount.Decimal)
		} else {
			pending = pending.Add(s.Amount.Decimal)
		}
	}
	return models.SalarySummary{TotalPaid: models.NewAmount(paid), TotalPending: models.NewAmount(pending)}
}
