package apitest

import (
	"encoding/json"
)

// seedJSON is the initial backend state. Numbers are strings and some ids
// are strings, as the PHP backend serialises them.
const seedJSON = `{
  "client.php": [
    {"id": 1, "name": "Acme Traders", "firm_name": "Acme", "contact": "0300-1111111",
     "opening_balance": "5000.00", "address": "Main Bazar", "description": ""},
    {"id": "2", "name": "Bilal Stores", "firm_name": "Bilal & Sons", "contact": "0300-2222222",
     "opening_balance": "0.00", "address": "", "description": "wholesale"}
  ],
  "vendor.php": [
    {"id": 1, "name": "Karachi Mills", "firm_name": "KM", "contact": "021-555",
     "opening_balance": "12000.00", "address": "SITE", "description": ""},
    {"id": 2, "name": "Lahore Packaging", "firm_name": "LP", "contact": "042-777",
     "opening_balance": "0", "address": "", "description": "boxes"}
  ],
  "product.php": [
    {"id": 1, "name": "Basmati Rice", "quantity": "150.50", "weight": "1.00"},
    {"id": 2, "name": "Sella Rice", "quantity": "80", "weight": "1"},
    {"id": 3, "name": "Rice Pack 1kg", "quantity": "40", "weight": "1"}
  ],
  "bank.php": [
    {"id": 1, "bank_name": "HBL", "balance": "250000.00", "opening_balance": "100000.00"},
    {"id": 2, "bank_name": "Meezan", "balance": "50000.00", "opening_balance": "50000.00"}
  ],
  "sale.php": [
    {"id": 1, "client_id": "1", "client_name": "Acme Traders", "product_id": "1",
     "product_name": "Basmati Rice", "quantity": "10.00", "price_per_kg": "250.00",
     "total_price": "2500.00", "packing": "bags", "product_type": "loose",
     "created_at": "2024-03-01 10:00:00"},
    {"id": 2, "client_id": "2", "product_id": "3", "quantity": "1.2", "price_per_kg": "4166.67",
     "total_price": "5000.00", "packing": "", "product_type": "ready", "dozen_quantity": "20",
     "grams_per_dozen": "300", "price_per_gram": "800", "price_per_carton": "1250.00", "pieces": "12",
     "grams_per_piece": "25", "rate_per_gram": "800", "packing_cost": "10",
     "dozens_per_box": "5", "total_boxes": "4", "created_at": "2024-03-10 12:30:00"},
    {"id": 3, "client_id": "1", "client_name": "Acme Traders", "product_id": "2",
     "product_name": "", "quantity": "5", "price_per_kg": "300", "total_price": "1500.00",
     "packing": "", "product_type": "loose", "created_at": "2024-04-02 09:00:00"}
  ],
  "order.php": [
    {"id": 1, "vendor_id": "1", "vendor_name": "Karachi Mills", "product_id": "1",
     "product_name": "Basmati Rice", "quantity": "200", "price_per_kg": "180",
     "total_price": "36000.00", "created_at": "2024-02-20 08:00:00"}
  ],
  "payments.php": [
    {"id": 1, "vendor_id": "1", "vendor_name": "Karachi Mills", "bank_id": "1", "bank_name": "HBL",
     "amount": "20000.00", "description": "Advance", "created_at": "2024-02-21 11:00:00"},
    {"id": 2, "vendor_id": "2", "vendor_name": "Lahore Packaging", "bank_id": "2", "bank_name": "Meezan",
     "amount": "3000.00", "description": "Boxes", "created_at": "2024-03-05 15:00:00"}
  ],
  "receives.php": [
    {"id": 1, "client_id": "1", "client_name": "Acme Traders", "bank_id": "1", "bank_name": "HBL",
     "amount": "2000.00", "description": "Part payment", "created_at": "2024-03-02 10:00:00"},
    {"id": 2, "client_id": "2", "client_name": "Bilal Stores", "bank_id": "1", "bank_name": "HBL",
     "amount": "45000.00", "description": "", "created_at": "2024-03-15 10:00:00"}
  ],
  "employee.php": [
    {"id": 1, "name": "Imran", "salary": "30000.00", "phone": "0300-3333333", "designation": "Manager"},
    {"id": 2, "name": "Sana", "salary": "20000", "phone": "", "designation": "Clerk"}
  ],
  "salaries.php": [
    {"id": 1, "employee_id": "1", "employee_name": "Imran", "bank_id": "1", "bank_name": "HBL",
     "amount": "30000.00", "month": "2024-02-01", "payment_date": "2024-02-28", "status": "paid", "notes": ""},
    {"id": 2, "employee_id": "1", "employee_name": "Imran", "bank_id": "1", "bank_name": "HBL",
     "amount": "10000.00", "month": "2024-03-01", "payment_date": "2024-03-31", "status": "pending", "notes": ""},
    {"id": 3, "employee_id": "2", "employee_name": "Sana", "bank_id": "2", "bank_name": "Meezan",
     "amount": "20000.00", "month": "2024-02-01", "payment_date": "2024-02-28", "status": "paid", "notes": ""}
  ],
  "expense.php": [
    {"id": 1, "category_id": "1", "category_name": "Fuel", "bank_id": "1", "bank_name": "HBL",
     "amount": "1500.00", "date": "2024-03-01", "description": "Diesel"},
    {"id": 2, "category_id": "2", "category_name": "Rent", "bank_id": "1", "bank_name": "HBL",
     "amount": "10000.00", "date": "2024-03-01", "description": "March rent"},
    {"id": 3, "category_id": "1", "category_name": "Fuel", "bank_id": "2", "bank_name": "Meezan",
     "amount": "2500.50", "date": "2024-03-12", "description": ""}
  ],
  "expense_category.php": [
    {"id": 1, "name": "Fuel"},
    {"id": 2, "name": "Rent"},
    {"id": 3, "name": "Utilities"}
  ]
}`

// Seed totals, for assertions.
const (
	SeedReceived = "47000"   // receives.php
	SeedPaid     = "23000"   // payments.php
	SeedExpenses = "14000.5" // expense.php
	SeedSalaries = "60000"   // salaries.php, every status
	SeedStock    = "270.5"   // product.php quantities
	SeedBalance  = "-50000.5"
)

// Seed returns a fresh copy of the initial tables.
func Seed() map[string][]Row {
	var tables map[string][]Row
	if err := json.Unmarshal([]byte(seedJSON), &tables); err != nil {
		panic("apitest: bad seed: " + err.Error())
	}
	return tables
}
