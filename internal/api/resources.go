package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-ports/bizdesk/internal/models"
)

// Endpoint names, relative to the base URL.
const (
	EndpointClients        = "client.php"
	EndpointVendors        = "vendor.php"
	EndpointProducts       = "product.php"
	EndpointBanks          = "bank.php"
	EndpointBankLedger     = "bank_ledger.php"
	EndpointSales          = "sale.php"
	EndpointPurchases      = "order.php"
	EndpointPayments       = "payments.php"
	EndpointReceipts       = "receives.php"
	EndpointEmployees      = "employee.php"
	EndpointSalaries       = "salaries.php"
	EndpointExpenses       = "expense.php"
	EndpointExpenseDetails = "expense_details.php"
	EndpointCategories     = "expense_category.php"
)

var (
	// ErrNotFound is returned by single-record lookups that match nothing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned before any request when a record id is blank.
	ErrInvalidID = errors.New("id is required")
)

func setIf(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}

// ---------------------------------------------------------------------------
// Filters
// ---------------------------------------------------------------------------

// DateRange bounds a listing by date (YYYY-MM-DD, inclusive). Empty bounds
// are omitted.
type DateRange struct {
	From string
	To   string
}

// LedgerFilter narrows a bank ledger.
type LedgerFilter struct {
	BankID    models.ID
	PartyType string // "client" or "vendor"
	PartyID   models.ID
	FromDate  string
	ToDate    string
}

// SalaryFilter narrows the salary listing.
type SalaryFilter struct {
	EmployeeID models.ID
	BankID     models.ID
	Status     string
	StartDate  string
	EndDate    string
}

// ExpenseDetailFilter selects expenses by id, by date range or by a single
// date. The first non-empty selector wins.
type ExpenseDetailFilter struct {
	ID   models.ID
	From string
	To   string
	Date string
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

// ListClients returns every client.
func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	return getData[[]models.Client](ctx, c, EndpointClients, nil)
}

// CreateClient adds a client.
func (c *Client) CreateClient(ctx context.Context, in *models.ClientInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointClients, nil, in)
}

// UpdateClient replaces the client identified by in.ID.
func (c *Client) UpdateClient(ctx context.Context, in *models.ClientInput) (*Ack, error) {
	if err := requireID("api.UpdateClient", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointClients, nil, in)
}

// DeleteClient removes a client.
func (c *Client) DeleteClient(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteClient", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointClients, nil, idBody{ID: id})
}

// ClientStatement returns a client's details and the sales booked to it in
// the given date range.
func (c *Client) ClientStatement(ctx context.Context, clientID models.ID, r DateRange) (*models.ClientStatement, error) {
	if err := requireID("api.ClientStatement", clientID); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("action", "client_sales")
	q.Set("client_id", clientID.String())
	setIf(q, "start_date", r.From)
	setIf(q, "end_date", r.To)

	payload, err := c.do(ctx, http.MethodGet, EndpointClients, q, nil)
	if err != nil {
		return nil, err
	}
	if _, err := decodeEnvelope(EndpointClients, payload, nil); err != nil {
		return nil, err
	}
	var st models.ClientStatement
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("%s: decode statement: %w", EndpointClients, err)
	}
	if st.Sales == nil {
		st.Sales = []models.Sale{}
	}
	return &st, nil
}

// ---------------------------------------------------------------------------
// Vendors
// ---------------------------------------------------------------------------

// ListVendors returns every vendor.
func (c *Client) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return getData[[]models.Vendor](ctx, c, EndpointVendors, nil)
}

// GetVendor returns one vendor.
func (c *Client) GetVendor(ctx context.Context, id models.ID) (*models.Vendor, error) {
	if err := requireID("api.GetVendor", id); err != nil {
		return nil, err
	}
	vendors, err := getData[[]models.Vendor](ctx, c, EndpointVendors, url.Values{"id": {id.String()}})
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
	}
	return &vendors[0], nil
}

// CreateVendor adds a vendor.
func (c *Client) CreateVendor(ctx context.Context, in *models.VendorInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointVendors, nil, in)
}

// UpdateVendor replaces the vendor identified by in.ID.
func (c *Client) UpdateVendor(ctx context.Context, in *models.VendorInput) (*Ack, error) {
	if err := requireID("api.UpdateVendor", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointVendors, nil, in)
}

// DeleteVendor removes a vendor.
func (c *Client) DeleteVendor(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteVendor", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointVendors, nil, idBody{ID: id})
}

// VendorPurchases returns the purchase orders placed with a vendor.
func (c *Client) VendorPurchases(ctx context.Context, vendorID models.ID) ([]models.Purchase, error) {
	if err := requireID("api.VendorPurchases", vendorID); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("vendor_purchases", "")
	q.Set("vendor_id", vendorID.String())
	return getData[[]models.Purchase](ctx, c, EndpointVendors, q)
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// ListProducts returns every product with its available stock.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	return getData[[]models.Product](ctx, c, EndpointProducts, nil)
}

// CreateProduct adds a product.
func (c *Client) CreateProduct(ctx context.Context, in *models.ProductInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointProducts, nil, in)
}

// UpdateProduct replaces the product identified by in.ID.
func (c *Client) UpdateProduct(ctx context.Context, in *models.ProductInput) (*Ack, error) {
	if err := requireID("api.UpdateProduct", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointProducts, nil, in)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteProduct", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointProducts, nil, idBody{ID: id})
}

// ---------------------------------------------------------------------------
// Banks
// ---------------------------------------------------------------------------

// ListBanks returns every bank account.
func (c *Client) ListBanks(ctx context.Context) ([]models.Bank, error) {
	return getData[[]models.Bank](ctx, c, EndpointBanks, nil)
}

// CreateBank adds a bank account.
func (c *Client) CreateBank(ctx context.Context, in *models.BankInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointBanks, nil, in)
}

// BankLedger returns the transactions of one bank plus the party filter
// options.
func (c *Client) BankLedger(ctx context.Context, f LedgerFilter) (*models.LedgerPage, error) {
	if err := requireID("api.BankLedger", f.BankID); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("bank_id", f.BankID.String())
	setIf(q, "party_type", f.PartyType)
	setIf(q, "party_id", f.PartyID.String())
	setIf(q, "from_date", f.FromDate)
	setIf(q, "to_date", f.ToDate)

	page, err := getData[models.LedgerPage](ctx, c, EndpointBankLedger, q)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ---------------------------------------------------------------------------
// Sales
// ---------------------------------------------------------------------------

// ListSales returns sales, optionally bounded by date.
func (c *Client) ListSales(ctx context.Context, r DateRange) ([]models.Sale, error) {
	q := url.Values{}
	setIf(q, "from", r.From)
	setIf(q, "to", r.To)
	return getData[[]models.Sale](ctx, c, EndpointSales, q)
}

// CreateSale books a sale.
func (c *Client) CreateSale(ctx context.Context, in *models.SaleInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointSales, nil, in)
}

// UpdateSale replaces the sale identified by in.ID.
func (c *Client) UpdateSale(ctx context.Context, in *models.SaleInput) (*Ack, error) {
	if err := requireID("api.UpdateSale", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointSales, nil, in)
}

// DeleteSale removes a sale. sale.php takes the id in the query string.
func (c *Client) DeleteSale(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteSale", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointSales, url.Values{"id": {id.String()}}, nil)
}

// ---------------------------------------------------------------------------
// Purchase orders
// ---------------------------------------------------------------------------

// ListPurchases returns every purchase order.
func (c *Client) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return getData[[]models.Purchase](ctx, c, EndpointPurchases, nil)
}

// CreatePurchase places a purchase order.
func (c *Client) CreatePurchase(ctx context.Context, in *models.PurchaseInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointPurchases, nil, in)
}

// UpdatePurchase replaces the order identified by in.ID.
func (c *Client) UpdatePurchase(ctx context.Context, in *models.PurchaseInput) (*Ack, error) {
	if err := requireID("api.UpdatePurchase", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointPurchases, nil, in)
}

// DeletePurchase removes a purchase order.
func (c *Client) DeletePurchase(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeletePurchase", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointPurchases, nil, idBody{ID: id})
}

// ---------------------------------------------------------------------------
// Payments and receipts
// ---------------------------------------------------------------------------

// ListPayments returns vendor payments, restricted to vendorID when set.
func (c *Client) ListPayments(ctx context.Context, vendorID models.ID) ([]models.Payment, error) {
	q := url.Values{}
	setIf(q, "vendor_id", vendorID.String())
	return getData[[]models.Payment](ctx, c, EndpointPayments, q)
}

// CreatePayment records a payment to a vendor.
func (c *Client) CreatePayment(ctx context.Context, in *models.PaymentInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointPayments, nil, in)
}

// ListReceipts returns client receipts, restricted to clientID when set.
func (c *Client) ListReceipts(ctx context.Context, clientID models.ID) ([]models.Receipt, error) {
	q := url.Values{}
	setIf(q, "client_id", clientID.String())
	return getData[[]models.Receipt](ctx, c, EndpointReceipts, q)
}

// CreateReceipt records money received from a client.
func (c *Client) CreateReceipt(ctx context.Context, in *models.ReceiptInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointReceipts, nil, in)
}

// ---------------------------------------------------------------------------
// Employees and salaries
// ---------------------------------------------------------------------------

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return getData[[]models.Employee](ctx, c, EndpointEmployees, nil)
}

// GetEmployee returns one employee.
func (c *Client) GetEmployee(ctx context.Context, id models.ID) (*models.Employee, error) {
	if err := requireID("api.GetEmployee", id); err != nil {
		return nil, err
	}
	employees, err := getData[[]models.Employee](ctx, c, EndpointEmployees, url.Values{"id": {id.String()}})
	if err != nil {
		return nil, err
	}
	// employee.php may ignore the filter and return everyone.
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], nil
		}
	}
	return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
}

// CreateEmployee adds an employee.
func (c *Client) CreateEmployee(ctx context.Context, in *models.EmployeeInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointEmployees, nil, in)
}

// UpdateEmployee replaces the employee identified by in.ID.
func (c *Client) UpdateEmployee(ctx context.Context, in *models.EmployeeInput) (*Ack, error) {
	if err := requireID("api.UpdateEmployee", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointEmployees, nil, in)
}

// DeleteEmployee removes an employee.
func (c *Client) DeleteEmployee(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteEmployee", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointEmployees, nil, idBody{ID: id})
}

// ListSalaries returns salary entries matching f together with the
// server-computed paid/pending summary.
func (c *Client) ListSalaries(ctx context.Context, f SalaryFilter) (*models.SalaryPage, error) {
	q := url.Values{}
	setIf(q, "employee_id", f.EmployeeID.String())
	setIf(q, "bank_id", f.BankID.String())
	setIf(q, "status", f.Status)
	setIf(q, "start_date", f.StartDate)
	setIf(q, "end_date", f.EndDate)

	payload, err := c.do(ctx, http.MethodGet, EndpointSalaries, q, nil)
	if err != nil {
		return nil, err
	}
	page := &models.SalaryPage{Salaries: []models.Salary{}}
	if _, err := decodeEnvelope(EndpointSalaries, payload, &page.Salaries); err != nil {
		return nil, err
	}
	if payload[0] == '{' {
		var extra struct {
			Summary models.SalarySummary `json:"summary"`
		}
		if err := json.Unmarshal(payload, &extra); err != nil {
			return nil, fmt.Errorf("%s: decode summary: %w", EndpointSalaries, err)
		}
		page.Summary = extra.Summary
	}
	return page, nil
}

// CreateSalary books a salary entry.
func (c *Client) CreateSalary(ctx context.Context, in *models.SalaryInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointSalaries, nil, in)
}

// UpdateSalary replaces the salary entry identified by in.ID.
func (c *Client) UpdateSalary(ctx context.Context, in *models.SalaryInput) (*Ack, error) {
	if err := requireID("api.UpdateSalary", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointSalaries, nil, in)
}

// DeleteSalary removes a salary entry.
func (c *Client) DeleteSalary(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteSalary", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointSalaries, nil, idBody{ID: id})
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// ListExpenses returns every expense.
func (c *Client) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return getData[[]models.Expense](ctx, c, EndpointExpenses, nil)
}

// CreateExpense books an expense.
func (c *Client) CreateExpense(ctx context.Context, in *models.ExpenseInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointExpenses, nil, in)
}

// ExpenseDetails returns expenses selected by f.
func (c *Client) ExpenseDetails(ctx context.Context, f ExpenseDetailFilter) ([]models.Expense, error) {
	q := url.Values{}
	switch {
	case f.ID != "":
		q.Set("id", f.ID.String())
	case f.From != "" || f.To != "":
		setIf(q, "from", f.From)
		setIf(q, "to", f.To)
	case f.Date != "":
		q.Set("date", f.Date)
	}
	return getData[[]models.Expense](ctx, c, EndpointExpenseDetails, q)
}

// ListCategories returns every expense category.
func (c *Client) ListCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return getData[[]models.ExpenseCategory](ctx, c, EndpointCategories, nil)
}

// CreateCategory adds an expense category.
func (c *Client) CreateCategory(ctx context.Context, in *models.CategoryInput) (*Ack, error) {
	return c.send(ctx, http.MethodPost, EndpointCategories, nil, in)
}

// UpdateCategory renames the category identified by in.ID.
func (c *Client) UpdateCategory(ctx context.Context, in *models.CategoryInput) (*Ack, error) {
	if err := requireID("api.UpdateCategory", in.ID); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPut, EndpointCategories, nil, in)
}

// DeleteCategory removes an expense category.
func (c *Client) DeleteCategory(ctx context.Context, id models.ID) (*Ack, error) {
	if err := requireID("api.DeleteCategory", id); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodDelete, EndpointCategories, nil, idBody{ID: id})
}
