// Package mcp provides the stdio MCP server exposing bizdesk tools to agents.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/buildinfo"
	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/selector"
	"github.com/go-ports/bizdesk/internal/service"
)

const listDescription = `List the records of one business resource (clients, vendors, products, banks, sales, purchases, payments, receipts, employees, salaries, expenses, categories). Sales come with client and product names filled in. Use "select" with a JSONPath expression (e.g. "$[*].name") to return only part of the listing.`

const dashboardDescription = `Summary figures for the business: total received from clients, total paid to vendors, stock on hand (kg), expenses, salaries and the resulting balance (received - paid - expenses - salaries).`

const quoteDescription = `Price a sale without booking it. Loose sales need quantity (kg) and price_per_kg. Ready (packaged) sales need pieces, grams_per_piece, rate_per_gram, packing_cost, dozens_per_box and total_boxes; the quote includes the per-dozen and per-box breakdown.`

const paymentDescription = `Record a payment to a vendor from a bank account. This moves money: confirm vendor, bank and amount with the user first.`

const statementDescription = `Statement of one client: their details, sales and receipts in an optional date range, with total sales, total received and the remaining balance.`

// NewServer creates and registers all bizdesk tools on a new MCP server.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("bizdesk", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve runs the MCP server over stdin/stdout until ctx is cancelled or
// stdin closes.
func Serve(ctx context.Context, svc *service.Service, stdin io.Reader, stdout io.Writer) error {
	return mcpserver.NewStdioServer(NewServer(svc)).Listen(ctx, stdin, stdout)
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription(listDescription),
		mcp.WithString("resource",
			mcp.Description("Resource to list."),
			mcp.Required(),
			mcp.Enum(service.Resources()...),
		),
		mcp.WithString("select",
			mcp.Description("Optional JSONPath applied to the listing."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max records (default all)."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("dashboard_summary",
		mcp.WithDescription(dashboardDescription),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := svc.Dashboard(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(d)
	})

	s.AddTool(mcp.NewTool("quote_sale",
		mcp.WithDescription(quoteDescription),
		mcp.WithString("product_type",
			mcp.Description("loose (priced by kg) or ready (packaged)."),
			mcp.Enum(string(models.ProductLoose), string(models.ProductReady)),
		),
		mcp.WithNumber("quantity", mcp.Description("Loose: kilograms.")),
		mcp.WithNumber("price_per_kg", mcp.Description("Loose: price per kilogram.")),
		mcp.WithNumber("pieces", mcp.Description("Ready: pieces per dozen pack.")),
		mcp.WithNumber("grams_per_piece", mcp.Description("Ready: weight of one piece in grams.")),
		mcp.WithNumber("rate_per_gram", mcp.Description("Ready: rate per gram.")),
		mcp.WithNumber("packing_cost", mcp.Description("Ready: packing cost per dozen.")),
		mcp.WithNumber("dozens_per_box", mcp.Description("Ready: dozens in one box.")),
		mcp.WithNumber("total_boxes", mcp.Description("Ready: number of boxes.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleQuote(req)
	})

	s.AddTool(mcp.NewTool("record_vendor_payment",
		mcp.WithDescription(paymentDescription),
		mcp.WithString("vendor_id", mcp.Description("Vendor id."), mcp.Required()),
		mcp.WithString("bank_id", mcp.Description("Bank id the money leaves from."), mcp.Required()),
		mcp.WithNumber("amount", mcp.Description("Amount paid, > 0."), mcp.Required()),
		mcp.WithString("description", mcp.Description("Optional note.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handlePayment(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("client_statement",
		mcp.WithDescription(statementDescription),
		mcp.WithString("client_id", mcp.Description("Client id."), mcp.Required()),
		mcp.WithString("from", mcp.Description("Start date, YYYY-MM-DD.")),
		mcp.WithString("to", mcp.Description("End date, YYYY-MM-DD.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.ClientStatement(ctx, idArg(req, "client_id"), api.DateRange{
			From: req.GetString("from", ""),
			To:   req.GetString("to", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(st)
	})

	s.AddTool(mcp.NewTool("search_references",
		mcp.WithDescription("Find clients, vendors, products, banks, employees or expense categories by name in the local reference cache. Run `bizdesk cache sync` first if it is empty."),
		mcp.WithString("query", mcp.Description("Name fragment."), mcp.Required()),
		mcp.WithString("kind", mcp.Description("Restrict to one kind (client, vendor, product, bank, employee, category).")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := cache.ParseKind(req.GetString("kind", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refs, err := svc.SearchRefs(req.GetString("query", ""), kind, 0)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]map[string]any, 0, len(refs))
		for _, r := range refs {
			out = append(out, map[string]any{"kind": r.Kind, "id": r.ID, "name": r.Name, "detail": r.Detail})
		}
		return jsonResult(out)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleList(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := svc.List(ctx, req.GetString("resource", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := truncate(rows, req.GetInt("limit", 0))
	if expr := strings.TrimSpace(req.GetString("select", "")); expr != "" {
		out, err = selector.Apply(out, expr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return jsonResult(out)
}

func handleQuote(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := &models.SaleInput{
		ProductType: models.ProductType(req.GetString("product_type", "")),
		Quantity:    amountArg(req, "quantity"),
		PricePerKg:  amountArg(req, "price_per_kg"),
	}
	if in.ProductType == models.ProductReady {
		in.Pieces = amountPtrArg(req, "pieces")
		in.GramsPerPiece = amountPtrArg(req, "grams_per_piece")
		in.RatePerGram = amountPtrArg(req, "rate_per_gram")
		in.PackingCost = amountPtrArg(req, "packing_cost")
		in.DozensPerBox = amountPtrArg(req, "dozens_per_box")
		in.TotalBoxes = amountPtrArg(req, "total_boxes")
	}
	q, err := service.Quote(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(q)
}

func handlePayment(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := &models.PaymentInput{
		VendorID:    idArg(req, "vendor_id"),
		BankID:      idArg(req, "bank_id"),
		Amount:      amountArg(req, "amount"),
		Description: req.GetString("description", ""),
	}
	ack, err := svc.AddPayment(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"id":      ack.ID,
		"message": ack.Message,
		"payment": in,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// truncate keeps the first n elements of a slice; n <= 0 keeps everything.
func truncate(v any, n int) any {
	rv := reflect.ValueOf(v)
	if n <= 0 || rv.Kind() != reflect.Slice || rv.Len() <= n {
		return v
	}
	return rv.Slice(0, n).Interface()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// idArg reads an id given either as a string or as a number.
func idArg(req mcp.CallToolRequest, name string) models.ID {
	switch v := req.GetArguments()[name].(type) {
	case string:
		return models.ID(strings.TrimSpace(v))
	case float64:
		return models.ID(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return ""
}

// amountArg reads a number given either as a JSON number or as a numeric
// string. Anything else is zero.
func amountArg(req mcp.CallToolRequest, name string) models.Amount {
	switch v := req.GetArguments()[name].(type) {
	case float64:
		return models.NewAmount(decimal.NewFromFloat(v))
	case string:
		return models.ParseAmount(v)
	}
	return models.Amount{}
}

func amountPtrArg(req mcp.CallToolRequest, name string) *models.Amount {
	if _, ok := req.GetArguments()[name]; !ok {
		return nil
	}
	a := amountArg(req, name)
	return &a
}
