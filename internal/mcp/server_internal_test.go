package mcp

// White-box testing required: idArg, amountArg, amountPtrArg and truncate
// coerce loosely typed tool arguments. Agents send ids and amounts as either
// strings or numbers, and the odd shapes are easier to pin down directly than
// through a running client.

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-ports/bizdesk/internal/models"
)

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// ---------------------------------------------------------------------------
// idArg
// ---------------------------------------------------------------------------

func TestIDArg(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		v    any
		want models.ID
	}{
		{"string", "12", "12"},
		{"padded string", " 7 ", "7"},
		{"whole number", float64(3), "3"},
		{"missing", nil, ""},
		{"bool ignored", true, ""},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			args := map[string]any{}
			if tc.v != nil {
				args["id"] = tc.v
			}
			c.Assert(idArg(request(args), "id"), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// amountArg / amountPtrArg
// ---------------------------------------------------------------------------

func TestAmountArg(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		v    any
		want string
	}{
		{"number", 1250.75, "1250.75"},
		{"numeric string", "300", "300.00"},
		{"blank string", "", "0.00"},
		{"garbage string", "lots", "0.00"},
		{"missing", nil, "0.00"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			args := map[string]any{}
			if tc.v != nil {
				args["amount"] = tc.v
			}
			c.Assert(amountArg(request(args), "amount").Fixed(2), qt.Equals, tc.want)
		})
	}
}

func TestAmountPtrArg(t *testing.T) {
	c := qt.New(t)
	req := request(map[string]any{"pieces": float64(12)})

	got := amountPtrArg(req, "pieces")
	c.Assert(got, qt.IsNotNil)
	c.Assert(got.Fixed(0), qt.Equals, "12")
	c.Assert(amountPtrArg(req, "total_boxes"), qt.IsNil)
}

// ---------------------------------------------------------------------------
// truncate
// ---------------------------------------------------------------------------

func TestTruncate(t *testing.T) {
	c := qt.New(t)
	rows := []models.Bank{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	c.Assert(truncate(rows, 2), qt.HasLen, 2)
	c.Assert(truncate(rows, 0), qt.HasLen, 3)
	c.Assert(truncate(rows, 10), qt.HasLen, 3)
	c.Assert(truncate("not a slice", 1), qt.Equals, "not a slice")
}
