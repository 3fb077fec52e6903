package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/report"
)

// Dashboard fetches payments, receipts, products, expenses and salaries
// concurrently and computes the summary. Any failed fetch fails the whole
// dashboard.
func (s *Service) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	var in report.DashboardInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Payments, err = s.api.ListPayments(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		in.Receipts, err = s.api.ListReceipts(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		in.Products, err = s.api.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Expenses, err = s.api.ListExpenses(gctx)
		return err
	})
	g.Go(func() error {
		page, err := s.api.ListSalaries(gctx, api.SalaryFilter{})
		if err != nil {
			return err
		}
		in.Salaries = page.Salaries
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Dashboard: %w", err)
	}

	d := report.NewDashboard(in)
	return &d, nil
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ClientStatementView is a client's sales and receipts with their totals.
type ClientStatementView struct {
	Client   models.Client    `json:"client"`
	Sales    []models.Sale    `json:"sales"`
	Receipts []models.Receipt `json:"receipts"`
	Totals   report.Statement `json:"totals"`
}

// ClientStatement combines the client's sales in r with the receipts booked
// in the same range.
func (s *Service) ClientStatement(ctx context.Context, clientID models.ID, r api.DateRange) (*ClientStatementView, error) {
	var (
		st       *models.ClientStatement
		receipts []models.Receipt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st, err = s.api.ClientStatement(gctx, clientID, r)
		return err
	})
	g.Go(func() (err error) {
		receipts, err = s.api.ListReceipts(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ClientStatement: %w", err)
	}

	receipts = filterReceipts(receipts, clientID, r)
	s.enrichSales(ctx, st.Sales)
	return &ClientStatementView{
		Client:   st.Client,
		Sales:    st.Sales,
		Receipts: receipts,
		Totals:   report.ClientStatement(st.Sales, receipts),
	}, nil
}

// filterReceipts keeps the client's receipts dated inside r.
func filterReceipts(receipts []models.Receipt, clientID models.ID, r api.DateRange) []models.Receipt {
	out := make([]models.Receipt, 0, len(receipts))
	for _, rc := range receipts {
		if rc.ClientID != "" && rc.ClientID != clientID {
			continue
		}
		if !inRange(rc.CreatedAt, r) {
			continue
		}
		out = append(out, rc)
	}
	return out
}

// inRange compares the date part of a timestamp against inclusive bounds.
func inRange(ts string, r api.DateRange) bool {
	if len(ts) > len(dateLayout) {
		ts = ts[:len(dateLayout)]
	}
	if ts == "" {
		return r.From == "" && r.To == ""
	}
	if r.From != "" && ts < r.From {
		return false
	}
	if r.To != "" && ts > r.To {
		return false
	}
	return true
}

// VendorView is a vendor with its purchase orders, payments and position.
type VendorView struct {
	Vendor    models.Vendor         `json:"vendor"`
	Purchases []models.Purchase     `json:"purchases"`
	Payments  []models.Payment      `json:"payments"`
	Totals    report.VendorPosition `json:"totals"`
}

// VendorDetails fetches a vendor, its purchases and its payments
// concurrently.
func (s *Service) VendorDetails(ctx context.Context, vendorID models.ID) (*VendorView, error) {
	var (
		vendor    *models.Vendor
		purchases []models.Purchase
		payments  []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		vendor, err = s.api.GetVendor(gctx, vendorID)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = s.api.VendorPurchases(gctx, vendorID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.api.ListPayments(gctx, vendorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("VendorDetails: %w", err)
	}

	return &VendorView{
		Vendor:    *vendor,
		Purchases: purchases,
		Payments:  payments,
		Totals:    report.VendorStatement(purchases, payments),
	}, nil
}

// ---------------------------------------------------------------------------
// Ledgers
// ---------------------------------------------------------------------------

// BankLedgerView is a bank ledger page with its totals.
type BankLedgerView struct {
	*models.LedgerPage
	Totals report.LedgerTotals `json:"totals"`
}

// BankLedger returns the filtered ledger of one bank.
func (s *Service) BankLedger(ctx context.Context, f api.LedgerFilter) (*BankLedgerView, error) {
	page, err := s.api.BankLedger(ctx, f)
	if err != nil {
		return nil, err
	}
	return &BankLedgerView{LedgerPage: page, Totals: report.Ledger(page.Ledger)}, nil
}

// SalaryLedgerView is one employee's salary entries and position.
type SalaryLedgerView struct {
	Employee models.Employee     `json:"employee"`
	Salaries []models.Salary     `json:"salaries"`
	Ledger   report.SalaryLedger `json:"ledger"`
}

// SalaryLedger fetches an employee and their salary entries concurrently.
func (s *Service) SalaryLedger(ctx context.Context, f api.SalaryFilter) (*SalaryLedgerView, error) {
	var (
		emp  *models.Employee
		page *models.SalaryPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emp, err = s.api.GetEmployee(gctx, f.EmployeeID)
		return err
	})
	g.Go(func() (err error) {
		page, err = s.api.ListSalaries(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("SalaryLedger: %w", err)
	}

	return &SalaryLedgerView{
		Employee: *emp,
		Salaries: page.Salaries,
		Ledger:   report.Salary(page.Summary, emp.Salary),
	}, nil
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// ExpenseGroups returns expenses grouped by category, highest total first.
func (s *Service) ExpenseGroups(ctx context.Context) ([]report.CategoryTotal, error) {
	expenses, err := s.api.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return report.GroupExpenses(expenses), nil
}

// ExpenseDetailView is a filtered expense listing with its total.
type ExpenseDetailView struct {
	Category string           `json:"category,omitempty"`
	Expenses []models.Expense `json:"expenses"`
	Total    models.Amount    `json:"total"`
}

// ExpenseDetails selects expenses with f and narrows them to one category
// when category is set.
func (s *Service) ExpenseDetails(ctx context.Context, f api.ExpenseDetailFilter, category string) (*ExpenseDetailView, error) {
	expenses, err := s.api.ExpenseDetails(ctx, f)
	if err != nil {
		return nil, err
	}
	kept, total := report.FilterCategory(expenses, category)
	return &ExpenseDetailView{Category: category, Expenses: kept, Total: total}, nil
}
