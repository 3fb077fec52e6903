// Package models defines the wire types exchanged with the business API.
//
// Read types mirror what the PHP endpoints return (snake_case keys, loosely
// typed numbers). Input types carry exactly the keys each form posts, which
// for clients and vendors are camelCase.
package models

// ProductType distinguishes bulk sales from packaged ("ready") sales.
type ProductType string

const (
	ProductLoose ProductType = "loose"
	ProductReady ProductType = "ready"
)

// SalaryStatus values accepted by salaries.php.
const (
	SalaryPaid    = "paid"
	SalaryPending = "pending"
)

// ValidSalaryStatuses lists the accepted salary status values.
var ValidSalaryStatuses = []string{SalaryPaid, SalaryPending}

// Ledger transaction types reported by bank_ledger.php.
const (
	Credit = "credit"
	Debit  = "debit"
)

// ---------------------------------------------------------------------------
// Parties and reference data
// ---------------------------------------------------------------------------

// Client is a customer buying goods.
type Client struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	FirmName       string `json:"firm_name,omitempty"`
	Contact        string `json:"contact,omitempty"`
	OpeningBalance Amount `json:"opening_balance"`
	Address        string `json:"address,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Vendor is a supplier goods are purchased from.
type Vendor struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	FirmName       string `json:"firm_name,omitempty"`
	Contact        string `json:"contact,omitempty"`
	OpeningBalance Amount `json:"opening_balance"`
	Address        string `json:"address,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Product is a stock item; Quantity is the available stock in kilograms.
type Product struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Quantity Amount `json:"quantity"`
	Weight   Amount `json:"weight"`
}

// Bank is a bank account funds move through.
type Bank struct {
	ID             ID     `json:"id"`
	BankName       string `json:"bank_name"`
	Balance        Amount `json:"balance"`
	OpeningBalance Amount `json:"opening_balance"`
}

// Employee is a salaried staff member.
type Employee struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Salary      Amount `json:"salary"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// ExpenseCategory groups expenses.
type ExpenseCategory struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

// Sale is a sale to a client. Ready sales also carry the dozen count, price
// per gram and carton price, and possibly the packaging inputs the total was
// computed from.
type Sale struct {
	ID          ID          `json:"id"`
	SaleID      ID          `json:"sale_id,omitempty"`
	ClientID    ID          `json:"client_id"`
	ClientName  string      `json:"client_name,omitempty"`
	ProductID   ID          `json:"product_id"`
	ProductName string      `json:"product_name,omitempty"`
	Quantity    Amount      `json:"quantity"`
	PricePerKg  Amount      `json:"price_per_kg"`
	TotalPrice  Amount      `json:"total_price"`
	Packing     string      `json:"packing,omitempty"`
	ProductType ProductType `json:"product_type,omitempty"`

	DozenQuantity  *Amount `json:"dozen_quantity,omitempty"`
	GramsPerDozen  *Amount `json:"grams_per_dozen,omitempty"`
	PricePerGram   *Amount `json:"price_per_gram,omitempty"`
	PricePerCarton *Amount `json:"price_per_carton,omitempty"`

	Pieces        *Amount `json:"pieces,omitempty"`
	GramsPerPiece *Amount `json:"grams_per_piece,omitempty"`
	RatePerGram   *Amount `json:"rate_per_gram,omitempty"`
	PackingCost   *Amount `json:"packing_cost,omitempty"`
	DozensPerBox  *Amount `json:"dozens_per_box,omitempty"`
	TotalBoxes    *Amount `json:"total_boxes,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// Key returns the sale id, falling back to sale_id used by client statements.
func (s *Sale) Key() ID {
	if s.ID != "" {
		return s.ID
	}
	return s.SaleID
}

// Purchase is a purchase order placed with a vendor.
type Purchase struct {
	ID          ID     `json:"id"`
	VendorID    ID     `json:"vendor_id"`
	VendorName  string `json:"vendor_name,omitempty"`
	ProductID   ID     `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    Amount `json:"quantity"`
	PricePerKg  Amount `json:"price_per_kg"`
	TotalPrice  Amount `json:"total_price"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Payment is money paid to a vendor from a bank.
type Payment struct {
	ID          ID     `json:"id"`
	VendorID    ID     `json:"vendor_id"`
	VendorName  string `json:"vendor_name,omitempty"`
	BankID      ID     `json:"bank_id"`
	BankName    string `json:"bank_name,omitempty"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Receipt is money received from a client into a bank.
type Receipt struct {
	ID          ID     `json:"id"`
	ClientID    ID     `json:"client_id"`
	ClientName  string `json:"client_name,omitempty"`
	BankID      ID     `json:"bank_id"`
	BankName    string `json:"bank_name,omitempty"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Salary is one payroll entry.
type Salary struct {
	ID           ID     `json:"id"`
	EmployeeID   ID     `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	BankID       ID     `json:"bank_id"`
	BankName     string `json:"bank_name,omitempty"`
	Amount       Amount `json:"amount"`
	Month        string `json:"month"`
	PaymentDate  string `json:"payment_date"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
}

// Expense is an outgoing cost booked against a category and a bank.
type Expense struct {
	ID           ID     `json:"id"`
	CategoryID   ID     `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	BankID       ID     `json:"bank_id"`
	BankName     string `json:"bank_name,omitempty"`
	Amount       Amount `json:"amount"`
	Date         string `json:"date"`
	Description  string `json:"description,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ---------------------------------------------------------------------------
// Composite responses
// ---------------------------------------------------------------------------

// Party is a client or vendor option offered by the bank ledger filters.
type Party struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// LedgerEntry is one bank transaction.
type LedgerEntry struct {
	ID              ID     `json:"id"`
	CreatedAt       string `json:"created_at"`
	PartyType       string `json:"party_type,omitempty"`
	PartyName       string `json:"party_name,omitempty"`
	TransactionType string `json:"transaction_type"`
	Amount          Amount `json:"amount"`
	Description     string `json:"description,omitempty"`
	ReferenceID     ID     `json:"reference_id,omitempty"`
}

// LedgerPage is the data payload of bank_ledger.php.
type LedgerPage struct {
	Bank    Bank          `json:"bank"`
	Ledger  []LedgerEntry `json:"ledger"`
	Filters struct {
		Clients []Party `json:"clients"`
		Vendors []Party `json:"vendors"`
	} `json:"filters"`
}

// SalarySummary is the summary block returned next to salary rows.
type SalarySummary struct {
	TotalPaid    Amount `json:"total_paid"`
	TotalPending Amount `json:"total_pending"`
}

// SalaryPage is salaries.php filtered by employee.
type SalaryPage struct {
	Salaries []Salary      `json:"salaries"`
	Summary  SalarySummary `json:"summary"`
}

// ClientStatement is client.php?action=client_sales.
type ClientStatement struct {
	Client Client `json:"client_details"`
	Sales  []Sale `json:"sales_data"`
}

// ---------------------------------------------------------------------------
// Inputs (request bodies)
// ---------------------------------------------------------------------------

// ClientInput is the create/update body for client.php.
type ClientInput struct {
	ID             ID     `json:"id,omitempty"`
	Name           string `json:"name"`
	FirmName       string `json:"firmName"`
	Contact        string `json:"contact"`
	OpeningBalance Amount `json:"openingBalance"`
	Address        string `json:"address"`
	Description    string `json:"description"`
}

// VendorInput is the create/update body for vendor.php.
type VendorInput struct {
	ID             ID     `json:"id,omitempty"`
	Name           string `json:"name"`
	FirmName       string `json:"firmName"`
	Contact        string `json:"contact"`
	OpeningBalance Amount `json:"openingBalance"`
	Address        string `json:"address"`
	Description    string `json:"description"`
}

// ProductInput is the create/update body for product.php.
type ProductInput struct {
	ID     ID     `json:"id,omitempty"`
	Name   string `json:"name"`
	Weight Amount `json:"weight"`
}

// BankInput is the create body for bank.php.
type BankInput struct {
	BankName       string `json:"bank_name"`
	OpeningBalance Amount `json:"opening_balance"`
}

// SaleInput is the create/update body for sale.php.
type SaleInput struct {
	ID          ID          `json:"id,omitempty"`
	ClientID    ID          `json:"client_id"`
	ClientName  string      `json:"client_name,omitempty"`
	ProductID   ID          `json:"product_id"`
	ProductName string      `json:"product_name,omitempty"`
	ProductType ProductType `json:"product_type"`
	Quantity    Amount      `json:"quantity"`
	PricePerKg  Amount      `json:"price_per_kg"`
	TotalPrice  Amount      `json:"total_price"`
	Packing     string      `json:"packing"`

	DozenQuantity  *Amount `json:"dozen_quantity,omitempty"`
	GramsPerDozen  *Amount `json:"grams_per_dozen,omitempty"`
	PricePerGram   *Amount `json:"price_per_gram,omitempty"`
	PricePerCarton *Amount `json:"price_per_carton,omitempty"`

	Pieces        *Amount `json:"pieces,omitempty"`
	GramsPerPiece *Amount `json:"grams_per_piece,omitempty"`
	RatePerGram   *Amount `json:"rate_per_gram,omitempty"`
	PackingCost   *Amount `json:"packing_cost,omitempty"`
	DozensPerBox  *Amount `json:"dozens_per_box,omitempty"`
	TotalBoxes    *Amount `json:"total_boxes,omitempty"`
}

// PurchaseInput is the create/update body for order.php.
type PurchaseInput struct {
	ID         ID     `json:"id,omitempty"`
	VendorID   ID     `json:"vendor_id"`
	ProductID  ID     `json:"product_id"`
	Quantity   Amount `json:"quantity"`
	PricePerKg Amount `json:"price_per_kg"`
	TotalPrice Amount `json:"total_price"`
}

// PaymentInput is the create body for payments.php.
type PaymentInput struct {
	VendorID    ID     `json:"vendor_id"`
	BankID      ID     `json:"bank_id"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
}

// ReceiptInput is the create body for receives.php.
type ReceiptInput struct {
	ClientID    ID     `json:"client_id"`
	BankID      ID     `json:"bank_id"`
	Amount      Amount `json:"amount"`
	Description string `json:"description"`
}

// EmployeeInput is the create/update body for employee.php.
type EmployeeInput struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name"`
	Salary      Amount `json:"salary"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
}

// SalaryInput is the create/update body for salaries.php.
type SalaryInput struct {
	ID          ID     `json:"id,omitempty"`
	EmployeeID  ID     `json:"employee_id"`
	BankID      ID     `json:"bank_id"`
	Amount      Amount `json:"amount"`
	Month       string `json:"month"`
	PaymentDate string `json:"payment_date"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// ExpenseInput is the create body for expense.php.
type ExpenseInput struct {
	CategoryID  ID     `json:"category_id"`
	BankID      ID     `json:"bank_id"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// CategoryInput is the create/update body for expense_category.php.
type CategoryInput struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}
