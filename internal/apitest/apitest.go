// Package apitest provides an in-memory imitation of the PHP business API
// for tests. It reproduces the backend's quirks: numbers serialised as
// strings, two envelope styles, a bare array from bank.php, optional stray
// output before the JSON body and brotli-compressed responses.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/shopspring/decimal"
)

// Row is one stored record, shaped as the backend would return it.
type Row = map[string]any

// Request is a request the server received.
type Request struct {
	Method   string
	Endpoint string
	Query    map[string]string
	Header   http.Header
	Body     Row
}

// Server is a fake backend. Tables are keyed by endpoint file name.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tables   map[string][]Row
	nextID   map[string]int
	requests []Request

	// Prefix is written before every response body.
	Prefix string
	// Fail maps an endpoint to an HTTP status to answer with.
	Fail map[string]int
	// Reject maps an endpoint to a message returned in a failure envelope.
	Reject map[string]string
}

// statusStyle lists endpoints answering {"status":"success"} instead of
// {"success":true}.
var statusStyle = []string{"bank_ledger.php", "employee.php", "salaries.php", "expense_details.php"}

// New starts a server seeded with Seed() and stops it when tb finishes.
func New(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{
		tables: Seed(),
		nextID: map[string]int{},
		Fail:   map[string]int{},
		Reject: map[string]string{},
	}
	for name, rows := range s.tables {
		s.nextID[name] = len(rows) + 1
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	tb.Cleanup(s.Close)
	return s
}

// BaseURL returns the URL clients should be configured with.
func (s *Server) BaseURL() string { return s.URL + "/api/" }

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request to endpoint.
func (s *Server) LastRequest(endpoint string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Endpoint == endpoint {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// Rows returns a copy of the rows stored for endpoint.
func (s *Server) Rows(endpoint string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.tables[endpoint]))
	for i, r := range s.tables[endpoint] {
		out[i] = cloneRow(r)
	}
	return out
}

// SetRows replaces the rows stored for endpoint.
func (s *Server) SetRows(endpoint string, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[endpoint] = rows
	s.nextID[endpoint] = len(rows) + 1
}

func cloneRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	query := map[string]string{}
	for k, v := range r.URL.Query() {
		query[k] = v[0]
	}
	var body Row
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				s.write(w, r, http.StatusBadRequest, Row{"success": false, "message": "invalid JSON"})
				return
			}
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Endpoint: endpoint,
		Query:    query,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	failCode := s.Fail[endpoint]
	rejectMsg, rejected := s.Reject[endpoint]
	s.mu.Unlock()

	if failCode != 0 {
		s.write(w, r, failCode, Row{"success": false, "message": "server exploded"})
		return
	}
	if rejected {
		s.write(w, r, http.StatusOK, Row{"success": false, "status": "error", "message": rejectMsg})
		return
	}
	if _, ok := s.table(endpoint); !ok && endpoint != "bank_ledger.php" && endpoint != "expense_details.php" {
		s.write(w, r, http.StatusNotFound, Row{"success": false, "message": "no such endpoint"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.write(w, r, http.StatusOK, s.get(endpoint, query))
	case http.MethodPost:
		s.write(w, r, http.StatusOK, s.create(endpoint, body))
	case http.MethodPut:
		s.write(w, r, http.StatusOK, s.update(endpoint, body))
	case http.MethodDelete:
		id := query["id"]
		if id == "" && body != nil {
			id = fmt.Sprint(body["id"])
		}
		s.write(w, r, http.StatusOK, s.remove(endpoint, id))
	default:
		s.write(w, r, http.StatusMethodNotAllowed, Row{"success": false, "message": "method not allowed"})
	}
}

func (s *Server) table(endpoint string) ([]Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[endpoint]
	return rows, ok
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.mu.Lock()
	body := append([]byte(s.Prefix), b...)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		_, _ = bw.Write(body)
		_ = bw.Close()
		body = buf.Bytes()
		w.Header().Set("Content-Encoding", "br")
	}
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func envelope(endpoint string, data any) Row {
	if slices.Contains(statusStyle, endpoint) {
		return Row{"status": "success", "data": data}
	}
	return Row{"success": true, "data": data}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (s *Server) get(endpoint string, q map[string]string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[endpoint]

	switch endpoint {
	case "bank.php":
		return nonNil(rows)

	case "client.php":
		if q["action"] == "client_sales" {
			client := find(rows, q["client_id"])
			if client == nil {
				return Row{"success": false, "message": "Client not found"}
			}
			sales := filter(s.tables["sale.php"], func(r Row) bool {
				return eq(r["client_id"], q["client_id"]) && inRange(r["created_at"], q["start_date"], q["end_date"])
			})
			return Row{"success": true, "client_details": client, "sales_data": nonNil(sales)}
		}

	case "vendor.php":
		if _, ok := q["vendor_purchases"]; ok {
			return envelope(endpoint, nonNil(filter(s.tables["order.php"], func(r Row) bool {
				return eq(r["vendor_id"], q["vendor_id"])
			})))
		}
		if id := q["id"]; id != "" {
			return envelope(endpoint, nonNil(filter(rows, func(r Row) bool { return eq(r["id"], id) })))
		}

	case "sale.php":
		return envelope(endpoint, nonNil(filter(rows, func(r Row) bool {
			return inRange(r["created_at"], q["from"], q["to"])
		})))

	case "payments.php":
		return envelope(endpoint, nonNil(filter(rows, func(r Row) bool { return matches(r, "vendor_id", q) })))

	case "receives.php":
		return envelope(endpoint, nonNil(filter(rows, func(r Row) bool { return matches(r, "client_id", q) })))

	case "employee.php":
		return envelope(endpoint, nonNil(filter(rows, func(r Row) bool { return matches(r, "id", q) })))

	case "salaries.php":
		selected := filter(rows, func(r Row) bool {
			return matches(r, "employee_id", q) && matches(r, "bank_id", q) && matches(r, "status", q) &&
				inRange(r["payment_date"], q["start_date"], q["end_date"])
		})
		paid, pending := decimal.Zero, decimal.Zero
		for _, r := range selected {
			amt := num(r["amount"])
			if r["status"] == "paid" {
				paid = paid.Add(amt)
			} else {
				pending = pending.Add(amt)
			}
		}
		return Row{
			"status": "success",
			"data":   nonNil(selected),
			"summary": Row{
				"total_paid":    paid.StringFixed(2),
				"total_pending": pending.StringFixed(2),
			},
		}

	case "bank_ledger.php":
		return s.ledger(q)

	case "expense_details.php":
		expenses := s.tables["expense.php"]
		var selected []Row
		switch {
		case q["id"] != "":
			selected = filter(expenses, func(r Row) bool { return eq(r["id"], q["id"]) })
		case q["from"] != "" || q["to"] != "":
			selected = filter(expenses, func(r Row) bool { return inRange(r["date"], q["from"], q["to"]) })
		case q["date"] != "":
			selected = filter(expenses, func(r Row) bool { return eq(r["date"], q["date"]) })
		default:
			selected = expenses
		}
		return envelope(endpoint, nonNil(selected))
	}

	return envelope(endpoint, nonNil(rows))
}

func (s *Server) ledger(q map[string]string) any {
	bank := find(s.tables["bank.php"], q["bank_id"])
	if bank == nil {
		return Row{"status": "error", "message": "Bank not found"}
	}
	var ledger []Row
	for _, r := range s.tables["payments.php"] {
		if eq(r["bank_id"], q["bank_id"]) && (q["party_type"] == "" || q["party_type"] == "vendor") &&
			(q["party_id"] == "" || eq(r["vendor_id"], q["party_id"])) && inRange(r["created_at"], q["from_date"], q["to_date"]) {
			ledger = append(ledger, Row{
				"id": r["id"], "created_at": r["created_at"], "party_type": "vendor",
				"party_name": r["vendor_name"], "transaction_type": "debit", "amount": r["amount"],
				"description": r["description"],
			})
		}
	}
	for _, r := range s.tables["receives.php"] {
		if eq(r["bank_id"], q["bank_id"]) && (q["party_type"] == "" || q["party_type"] == "client") &&
			(q["party_id"] == "" || eq(r["client_id"], q["party_id"])) && inRange(r["created_at"], q["from_date"], q["to_date"]) {
			ledger = append(ledger, Row{
				"id": r["id"], "created_at": r["created_at"], "party_type": "client",
				"party_name": r["client_name"], "transaction_type": "credit", "amount": r["amount"],
				"description": r["description"],
			})
		}
	}
	parties := func(rows []Row) []Row {
		out := make([]Row, 0, len(rows))
		for _, r := range rows {
			out = append(out, Row{"id": r["id"], "name": r["name"]})
		}
		return out
	}
	return Row{"status": "success", "data": Row{
		"bank":   bank,
		"ledger": nonNil(ledger),
		"filters": Row{
			"clients": parties(s.tables["client.php"]),
			"vendors": parties(s.tables["vendor.php"]),
		},
	}}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// camelKeys maps the camelCase keys client and vendor forms post to the
// stored column names.
var camelKeys = map[string]string{"firmName": "firm_name", "openingBalance": "opening_balance"}

func (s *Server) create(endpoint string, body Row) any {
	if body == nil {
		return Row{"success": false, "message": "empty body"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID[endpoint]
	s.nextID[endpoint] = id + 1
	row := Row{"id": id}
	for k, v := range body {
		if col, ok := camelKeys[k]; ok {
			k = col
		}
		row[k] = v
	}
	s.tables[endpoint] = append(s.tables[endpoint], row)
	return Row{"success": true, "status": "success", "message": "Record created successfully", "id": id}
}

func (s *Server) update(endpoint string, body Row) any {
	if body == nil || body["id"] == nil {
		return Row{"success": false, "message": "id is required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := find(s.tables[endpoint], fmt.Sprint(body["id"]))
	if row == nil {
		return Row{"success": false, "message": "Record not found"}
	}
	for k, v := range body {
		if col, ok := camelKeys[k]; ok {
			k = col
		}
		row[k] = v
	}
	return Row{"success": true, "status": "success", "message": "Record updated successfully"}
}

func (s *Server) remove(endpoint, id string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[endpoint]
	for i, r := range rows {
		if eq(r["id"], id) {
			s.tables[endpoint] = slices.Delete(rows, i, i+1)
			return Row{"success": true, "status": "success", "message": "Record deleted successfully"}
		}
	}
	return Row{"success": false, "message": "Record not found"}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func eq(v any, s string) bool { return fmt.Sprint(v) == s }

func matches(r Row, key string, q map[string]string) bool {
	want, ok := q[key]
	return !ok || want == "" || eq(r[key], want)
}

func find(rows []Row, id string) Row {
	for _, r := range rows {
		if eq(r["id"], id) {
			return r
		}
	}
	return nil
}

func filter(rows []Row, keep func(Row) bool) []Row {
	var out []Row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func nonNil(rows []Row) []Row {
	if rows == nil {
		return []Row{}
	}
	return rows
}

// inRange compares the YYYY-MM-DD prefix of v against inclusive bounds.
func inRange(v any, from, to string) bool {
	s, _ := v.(string)
	if len(s) >= 10 {
		s = s[:10]
	}
	if from != "" && s < from {
		return false
	}
	if to != "" && s > to {
		return false
	}
	return true
}

func num(v any) decimal.Decimal {
	switch x := v.(type) {
	case string:
		d, _ := decimal.NewFromString(x)
		return d
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	}
	d, _ := decimal.NewFromString(fmt.Sprint(v))
	return d
}
