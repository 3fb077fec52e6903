package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/pricing"
	"github.com/go-ports/bizdesk/internal/validate"
)

const dateLayout = "2006-01-02"

// ErrUnknownResource is returned by List for names it does not serve.
var ErrUnknownResource = errors.New("unknown resource")

// lister fetches one resource listing.
type lister func(ctx context.Context, s *Service) (any, error)

var resources = map[string]lister{
	"clients":    func(ctx context.Context, s *Service) (any, error) { return s.api.ListClients(ctx) },
	"vendors":    func(ctx context.Context, s *Service) (any, error) { return s.api.ListVendors(ctx) },
	"products":   func(ctx context.Context, s *Service) (any, error) { return s.api.ListProducts(ctx) },
	"banks":      func(ctx context.Context, s *Service) (any, error) { return s.api.ListBanks(ctx) },
	"sales":      func(ctx context.Context, s *Service) (any, error) { return s.ListSales(ctx, api.DateRange{}) },
	"purchases":  func(ctx context.Context, s *Service) (any, error) { return s.api.ListPurchases(ctx) },
	"payments":   func(ctx context.Context, s *Service) (any, error) { return s.api.ListPayments(ctx, "") },
	"receipts":   func(ctx context.Context, s *Service) (any, error) { return s.api.ListReceipts(ctx, "") },
	"employees":  func(ctx context.Context, s *Service) (any, error) { return s.api.ListEmployees(ctx) },
	"expenses":   func(ctx context.Context, s *Service) (any, error) { return s.api.ListExpenses(ctx) },
	"categories": func(ctx context.Context, s *Service) (any, error) { return s.api.ListCategories(ctx) },
	"salaries": func(ctx context.Context, s *Service) (any, error) {
		page, err := s.api.ListSalaries(ctx, api.SalaryFilter{})
		if err != nil {
			return nil, err
		}
		return page.Salaries, nil
	},
}

// Resources returns the names accepted by List, sorted.
func Resources() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the full listing of a named resource ("clients", "sales",
// ...). Sales are name-enriched.
func (s *Service) List(ctx context.Context, resource string) (any, error) {
	fn, ok := resources[strings.ToLower(strings.TrimSpace(resource))]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownResource, resource, strings.Join(Resources(), ", "))
	}
	return fn(ctx, s)
}

func (s *Service) today() string { return s.now().Format(dateLayout) }

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

// ListClients returns every client.
func (s *Service) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.api.ListClients(ctx)
}

// AddClient validates and creates a client.
func (s *Service) AddClient(ctx context.Context, in *models.ClientInput) (*api.Ack, error) {
	if err := validate.Client(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateClient(ctx, in)
	return s.settle(ctx, ack, err, cache.KindClient)
}

// UpdateClient validates and replaces a client.
func (s *Service) UpdateClient(ctx context.Context, in *models.ClientInput) (*api.Ack, error) {
	if err := validate.Client(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateClient(ctx, in)
	return s.settle(ctx, ack, err, cache.KindClient)
}

// DeleteClient removes a client.
func (s *Service) DeleteClient(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteClient(ctx, id)
	return s.settle(ctx, ack, err, cache.KindClient)
}

// settle refreshes the cached kinds a successful write changed.
func (s *Service) settle(ctx context.Context, ack *api.Ack, err error, kinds ...cache.Kind) (*api.Ack, error) {
	if err != nil {
		return nil, err
	}
	s.touched(ctx, kinds...)
	return ack, nil
}

// ---------------------------------------------------------------------------
// Vendors
// ---------------------------------------------------------------------------

// ListVendors returns every vendor.
func (s *Service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.api.ListVendors(ctx)
}

// AddVendor validates and creates a vendor.
func (s *Service) AddVendor(ctx context.Context, in *models.VendorInput) (*api.Ack, error) {
	if err := validate.Vendor(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateVendor(ctx, in)
	return s.settle(ctx, ack, err, cache.KindVendor)
}

// UpdateVendor validates and replaces a vendor.
func (s *Service) UpdateVendor(ctx context.Context, in *models.VendorInput) (*api.Ack, error) {
	if err := validate.Vendor(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateVendor(ctx, in)
	return s.settle(ctx, ack, err, cache.KindVendor)
}

// DeleteVendor removes a vendor.
func (s *Service) DeleteVendor(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteVendor(ctx, id)
	return s.settle(ctx, ack, err, cache.KindVendor)
}

// ---------------------------------------------------------------------------
// Products and banks
// ---------------------------------------------------------------------------

// ListProducts returns every product with its stock.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.api.ListProducts(ctx)
}

// AddProduct validates and creates a product.
func (s *Service) AddProduct(ctx context.Context, in *models.ProductInput) (*api.Ack, error) {
	if err := validate.Product(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateProduct(ctx, in)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// UpdateProduct validates and replaces a product.
func (s *Service) UpdateProduct(ctx context.Context, in *models.ProductInput) (*api.Ack, error) {
	if err := validate.Product(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateProduct(ctx, in)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteProduct(ctx, id)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// ListBanks returns every bank with its balance.
func (s *Service) ListBanks(ctx context.Context) ([]models.Bank, error) {
	return s.api.ListBanks(ctx)
}

// AddBank validates and creates a bank.
func (s *Service) AddBank(ctx context.Context, in *models.BankInput) (*api.Ack, error) {
	if err := validate.Bank(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateBank(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// ---------------------------------------------------------------------------
// Purchases
// ---------------------------------------------------------------------------

// ListPurchases returns every purchase order.
func (s *Service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.api.ListPurchases(ctx)
}

func pricePurchase(in *models.PurchaseInput) {
	in.TotalPrice = models.NewAmount(pricing.LooseTotal(in.Quantity.Decimal, in.PricePerKg.Decimal))
}

// AddPurchase prices, validates and books a purchase order.
func (s *Service) AddPurchase(ctx context.Context, in *models.PurchaseInput) (*api.Ack, error) {
	pricePurchase(in)
	if err := validate.Purchase(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreatePurchase(ctx, in)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// UpdatePurchase re-prices and replaces a purchase order.
func (s *Service) UpdatePurchase(ctx context.Context, in *models.PurchaseInput) (*api.Ack, error) {
	pricePurchase(in)
	if err := validate.Purchase(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdatePurchase(ctx, in)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// DeletePurchase removes a purchase order.
func (s *Service) DeletePurchase(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeletePurchase(ctx, id)
	return s.settle(ctx, ack, err, cache.KindProduct)
}

// ---------------------------------------------------------------------------
// Payments and receipts
// ---------------------------------------------------------------------------

// ListPayments returns vendor payments, optionally for one vendor.
func (s *Service) ListPayments(ctx context.Context, vendorID models.ID) ([]models.Payment, error) {
	return s.api.ListPayments(ctx, vendorID)
}

// AddPayment validates and records a payment to a vendor.
func (s *Service) AddPayment(ctx context.Context, in *models.PaymentInput) (*api.Ack, error) {
	if err := validate.Payment(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreatePayment(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// ListReceipts returns client receipts, optionally for one client.
func (s *Service) ListReceipts(ctx context.Context, clientID models.ID) ([]models.Receipt, error) {
	return s.api.ListReceipts(ctx, clientID)
}

// AddReceipt validates and records money received from a client.
func (s *Service) AddReceipt(ctx context.Context, in *models.ReceiptInput) (*api.Ack, error) {
	if err := validate.Receipt(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateReceipt(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// ---------------------------------------------------------------------------
// Employees and salaries
// ---------------------------------------------------------------------------

// ListEmployees returns every employee.
func (s *Service) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.api.ListEmployees(ctx)
}

// AddEmployee validates and creates an employee.
func (s *Service) AddEmployee(ctx context.Context, in *models.EmployeeInput) (*api.Ack, error) {
	if err := validate.Employee(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateEmployee(ctx, in)
	return s.settle(ctx, ack, err, cache.KindEmployee)
}

// UpdateEmployee validates and replaces an employee.
func (s *Service) UpdateEmployee(ctx context.Context, in *models.EmployeeInput) (*api.Ack, error) {
	if err := validate.Employee(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateEmployee(ctx, in)
	return s.settle(ctx, ack, err, cache.KindEmployee)
}

// DeleteEmployee removes an employee.
func (s *Service) DeleteEmployee(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteEmployee(ctx, id)
	return s.settle(ctx, ack, err, cache.KindEmployee)
}

// ListSalaries returns salary entries with the server summary.
func (s *Service) ListSalaries(ctx context.Context, f api.SalaryFilter) (*models.SalaryPage, error) {
	return s.api.ListSalaries(ctx, f)
}

// normalizeSalary fills defaults: the current month, today's payment date
// and pending status.
func (s *Service) normalizeSalary(in *models.SalaryInput) error {
	if strings.TrimSpace(in.Month) == "" {
		in.Month = s.now().Format("2006-01")
	}
	month, err := validate.NormalizeMonth(in.Month)
	if err != nil {
		return &validate.Error{Form: "salary", Problems: []validate.FieldError{{Field: "month", Problem: "must be YYYY-MM"}}}
	}
	in.Month = month
	if strings.TrimSpace(in.PaymentDate) == "" {
		in.PaymentDate = s.today()
	}
	in.Status = validate.NormalizeStatus(in.Status)
	return validate.Salary(in)
}

// AddSalary normalises, validates and books a salary entry.
func (s *Service) AddSalary(ctx context.Context, in *models.SalaryInput) (*api.Ack, error) {
	if err := s.normalizeSalary(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateSalary(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// UpdateSalary normalises, validates and replaces a salary entry.
func (s *Service) UpdateSalary(ctx context.Context, in *models.SalaryInput) (*api.Ack, error) {
	if err := s.normalizeSalary(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateSalary(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// DeleteSalary removes a salary entry.
func (s *Service) DeleteSalary(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteSalary(ctx, id)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// ---------------------------------------------------------------------------
// Expenses and categories
// ---------------------------------------------------------------------------

// ListExpenses returns every expense.
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.api.ListExpenses(ctx)
}

// AddExpense validates and books an expense. An empty date means today.
func (s *Service) AddExpense(ctx context.Context, in *models.ExpenseInput) (*api.Ack, error) {
	if strings.TrimSpace(in.Date) == "" {
		in.Date = s.today()
	}
	if err := validate.Expense(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateExpense(ctx, in)
	return s.settle(ctx, ack, err, cache.KindBank)
}

// ListCategories returns every expense category.
func (s *Service) ListCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return s.api.ListCategories(ctx)
}

// AddCategory validates and creates an expense category.
func (s *Service) AddCategory(ctx context.Context, in *models.CategoryInput) (*api.Ack, error) {
	if err := validate.Category(in); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateCategory(ctx, in)
	return s.settle(ctx, ack, err, cache.KindCategory)
}

// UpdateCategory validates and renames an expense category.
func (s *Service) UpdateCategory(ctx context.Context, in *models.CategoryInput) (*api.Ack, error) {
	if err := validate.Category(in); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateCategory(ctx, in)
	return s.settle(ctx, ack, err, cache.KindCategory)
}

// DeleteCategory removes an expense category.
func (s *Service) DeleteCategory(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteCategory(ctx, id)
	return s.settle(ctx, ack, err, cache.KindCategory)
}
