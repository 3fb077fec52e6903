package report_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/report"
)

func amt(s string) models.Amount { return models.ParseAmount(s) }

func TestNewDashboard(t *testing.T) {
	c := qt.New(t)

	d := report.NewDashboard(report.DashboardInput{
		Payments: []models.Payment{{Amount: amt("20000")}, {Amount: amt("3000")}},
		Receipts: []models.Receipt{{Amount: amt("2000")}, {Amount: amt("45000")}},
		Products: []models.Product{{Quantity: amt("150.5")}, {Quantity: amt("80")}},
		Expenses: []models.Expense{{Amount: amt("1500")}, {Amount: amt("0.10")}},
		Salaries: []models.Salary{
			{Amount: amt("30000"), Status: models.SalaryPaid},
			{Amount: amt("10000"), Status: models.SalaryPending},
		},
	})

	c.Assert(d.Received.Fixed(2), qt.Equals, "47000.00")
	c.Assert(d.Paid.Fixed(2), qt.Equals, "23000.00")
	c.Assert(d.Stock.String(), qt.Equals, "230.5")
	c.Assert(d.Expenses.Fixed(2), qt.Equals, "1500.10")
	c.Assert(d.Salaries.Fixed(2), qt.Equals, "40000.00")
	c.Assert(d.Balance.Fixed(2), qt.Equals, "-17500.10")
}

func TestNewDashboard_Empty(t *testing.T) {
	c := qt.New(t)

	d := report.NewDashboard(report.DashboardInput{})
	c.Assert(d.Balance.IsZero(), qt.IsTrue)
	c.Assert(d.Stock.IsZero(), qt.IsTrue)
}

func TestGroupExpenses(t *testing.T) {
	c := qt.New(t)

	groups := report.GroupExpenses([]models.Expense{
		{CategoryName: "Fuel", Amount: amt("1500")},
		{CategoryName: "Rent", Amount: amt("10000")},
		{CategoryName: "Fuel", Amount: amt("2500.50")},
		{CategoryName: "", Amount: amt("75")},
		{CategoryName: "Bills", Amount: amt("75")},
	})

	c.Assert(groups, qt.HasLen, 4)
	c.Assert(groups[0].Category, qt.Equals, "Rent")
	c.Assert(groups[1].Category, qt.Equals, "Fuel")
	c.Assert(groups[1].Count, qt.Equals, 2)
	c.Assert(groups[1].Total.Fixed(2), qt.Equals, "4000.50")
	// Equal totals fall back to name order.
	c.Assert(groups[2].Category, qt.Equals, "Bills")
	c.Assert(groups[3].Category, qt.Equals, report.UncategorisedLabel)
}

func TestFilterCategory(t *testing.T) {
	c := qt.New(t)

	expenses := []models.Expense{
		{CategoryName: "Fuel", Amount: amt("1500")},
		{CategoryName: "Rent", Amount: amt("10000")},
		{CategoryName: "fuel", Amount: amt("2500.50")},
	}

	c.Run("one category", func(c *qt.C) {
		got, total := report.FilterCategory(expenses, "Fuel")
		c.Assert(got, qt.HasLen, 2)
		c.Assert(total.Fixed(2), qt.Equals, "4000.50")
	})

	c.Run("empty category keeps all", func(c *qt.C) {
		got, total := report.FilterCategory(expenses, "")
		c.Assert(got, qt.HasLen, 3)
		c.Assert(total.Fixed(2), qt.Equals, "14000.50")
	})

	c.Run("unknown category", func(c *qt.C) {
		got, total := report.FilterCategory(expenses, "Travel")
		c.Assert(got, qt.HasLen, 0)
		c.Assert(total.IsZero(), qt.IsTrue)
	})
}

func TestLedger(t *testing.T) {
	c := qt.New(t)

	totals := report.Ledger([]models.LedgerEntry{
		{TransactionType: models.Credit, Amount: amt("2000")},
		{TransactionType: "CREDIT", Amount: amt("45000")},
		{TransactionType: models.Debit, Amount: amt("20000")},
		{TransactionType: "", Amount: amt("500")},
	})
	c.Assert(totals.Credits.Fixed(2), qt.Equals, "47000.00")
	c.Assert(totals.Debits.Fixed(2), qt.Equals, "20500.00")
	c.Assert(totals.Net.Fixed(2), qt.Equals, "26500.00")
}

func TestClientStatement(t *testing.T) {
	c := qt.New(t)

	c.Run("outstanding balance", func(c *qt.C) {
		st := report.ClientStatement(
			[]models.Sale{{TotalPrice: amt("2500")}, {TotalPrice: amt("1500")}},
			[]models.Receipt{{Amount: amt("2000")}},
		)
		c.Assert(st.TotalSales.Fixed(2), qt.Equals, "4000.00")
		c.Assert(st.Received.Fixed(2), qt.Equals, "2000.00")
		c.Assert(st.Remaining.Fixed(2), qt.Equals, "2000.00")
	})

	c.Run("advance payment goes negative", func(c *qt.C) {
		st := report.ClientStatement(nil, []models.Receipt{{Amount: amt("100")}})
		c.Assert(st.Remaining.Fixed(2), qt.Equals, "-100.00")
	})
}

func TestVendorStatement(t *testing.T) {
	c := qt.New(t)

	pos := report.VendorStatement(
		[]models.Purchase{{TotalPrice: amt("36000")}, {TotalPrice: amt("4000.50")}},
		[]models.Payment{{Amount: amt("20000")}},
	)
	c.Assert(pos.TotalPurchases.Fixed(2), qt.Equals, "40000.50")
	c.Assert(pos.Paid.Fixed(2), qt.Equals, "20000.00")
	c.Assert(pos.Remaining.Fixed(2), qt.Equals, "20000.50")
}

func TestSalary(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name      string
		paid      string
		salary    string
		remaining string
	}{
		{"partly paid", "10000", "30000", "20000.00"},
		{"fully paid", "30000", "30000", "0.00"},
		{"overpaid clamps to zero", "45000", "30000", "0.00"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			l := report.Salary(models.SalarySummary{TotalPaid: amt(tc.paid)}, amt(tc.salary))
			c.Assert(l.Remaining.Fixed(2), qt.Equals, tc.remaining)
			c.Assert(l.Salary.Fixed(2), qt.Equals, amt(tc.salary).Fixed(2))
		})
	}
}

func TestSummariseSalaries(t *testing.T) {
	c := qt.New(t)

	s := report.SummariseSalaries([]models.Salary{
		{Amount: amt("30000"), Status: models.SalaryPaid},
		{Amount: amt("10000"), Status: models.SalaryPending},
		{Amount: amt("5000"), Status: "Paid"},
	})
	c.Assert(s.TotalPaid.Fixed(2), qt.Equals, "35000.00")
	c.Assert(s.TotalPending.Fixed(2), qt.Equals, "10000.00")
}
