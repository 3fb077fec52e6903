package models_test

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/models"
)

// ---------------------------------------------------------------------------
// ID
// ---------------------------------------------------------------------------

func TestIDUnmarshal_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want models.ID
	}{
		{"number", `7`, "7"},
		{"string", `"7"`, "7"},
		{"padded string", `" 12 "`, "12"},
		{"null", `null`, ""},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			var id models.ID
			c.Assert(json.Unmarshal([]byte(tc.in), &id), qt.IsNil)
			c.Assert(id, qt.Equals, tc.want)
		})
	}
}

func TestIDMarshal_NumericIDsStayNumbers(t *testing.T) {
	c := qt.New(t)

	b, err := json.Marshal(models.CategoryInput{ID: "42", Name: "Fuel"})
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, `{"id":42,"name":"Fuel"}`)

	b, err = json.Marshal(models.CategoryInput{Name: "Fuel"})
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, `{"name":"Fuel"}`)

	b, err = json.Marshal(models.CategoryInput{ID: "abc", Name: "Fuel"})
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, `{"id":"abc","name":"Fuel"}`)
}

// ---------------------------------------------------------------------------
// Amount
// ---------------------------------------------------------------------------

func TestAmountUnmarshal_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `12.5`, "12.5"},
		{"numeric string", `"1200.00"`, "1200"},
		{"empty string", `""`, "0"},
		{"null", `null`, "0"},
		{"negative", `"-3"`, "-3"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			var a models.Amount
			c.Assert(json.Unmarshal([]byte(tc.in), &a), qt.IsNil)
			c.Assert(a.String(), qt.Equals, tc.want)
		})
	}
}

func TestAmountUnmarshal_FailurePath(t *testing.T) {
	c := qt.New(t)

	var a models.Amount
	err := json.Unmarshal([]byte(`"twelve"`), &a)
	c.Assert(err, qt.ErrorMatches, `models.Amount: "twelve" is not a number`)
}

func TestParseAmount(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		in   string
		want string
	}{
		{"₹ 250.00", "250"},
		{"Rs. 1,250.50", "1250.5"},
		{"  42 ", "42"},
		{"", "0"},
		{"abc", "0"},
	}

	for _, tc := range cases {
		c.Run(tc.in, func(c *qt.C) {
			c.Assert(models.ParseAmount(tc.in).String(), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

func TestEnvelopeOK(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"success true", `{"success":true,"data":[]}`, true},
		{"status success", `{"status":"success","data":[]}`, true},
		{"status Success mixed case", `{"status":"Success"}`, true},
		{"success string", `{"success":"true"}`, true},
		{"success false", `{"success":false,"message":"nope"}`, false},
		{"status error", `{"status":"error","message":"nope"}`, false},
		{"no marker", `{"data":[]}`, false},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			var env models.Envelope
			c.Assert(json.Unmarshal([]byte(tc.in), &env), qt.IsNil)
			c.Assert(env.OK(), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

func TestSaleDecodeFromPHP(t *testing.T) {
	c := qt.New(t)

	raw := `{"id":"3","client_id":1,"client_name":"Acme","product_id":"2",
		"quantity":"10.5","price_per_kg":"200","total_price":"2100.00","packing":null}`
	var s models.Sale
	c.Assert(json.Unmarshal([]byte(raw), &s), qt.IsNil)
	c.Assert(s.Key(), qt.Equals, models.ID("3"))
	c.Assert(s.ClientID, qt.Equals, models.ID("1"))
	c.Assert(s.Quantity.String(), qt.Equals, "10.5")
	c.Assert(s.TotalPrice.Fixed(2), qt.Equals, "2100.00")
	c.Assert(s.Pieces, qt.IsNil)
}

func TestSaleDecodeReadyColumns(t *testing.T) {
	c := qt.New(t)

	raw := `{"id":7,"product_type":"ready","quantity":"1.2","dozen_quantity":"20",
		"grams_per_dozen":300,"price_per_gram":"800.00","price_per_carton":"1250.00"}`
	var s models.Sale
	c.Assert(json.Unmarshal([]byte(raw), &s), qt.IsNil)
	c.Assert(s.ProductType, qt.Equals, models.ProductReady)
	c.Assert(s.DozenQuantity.String(), qt.Equals, "20")
	c.Assert(s.GramsPerDozen.String(), qt.Equals, "300")
	c.Assert(s.PricePerGram.Fixed(2), qt.Equals, "800.00")
	c.Assert(s.PricePerCarton.Fixed(2), qt.Equals, "1250.00")
	c.Assert(s.Pieces, qt.IsNil)
}

func TestSaleKeyFallsBackToSaleID(t *testing.T) {
	c := qt.New(t)

	var s models.Sale
	c.Assert(json.Unmarshal([]byte(`{"sale_id":9}`), &s), qt.IsNil)
	c.Assert(s.Key(), qt.Equals, models.ID("9"))
}

func TestClientInputUsesCamelCaseKeys(t *testing.T) {
	c := qt.New(t)

	b, err := json.Marshal(models.ClientInput{
		Name:           "Acme",
		FirmName:       "Acme Traders",
		OpeningBalance: models.AmountFromFloat(150),
	})
	c.Assert(err, qt.IsNil)

	var got map[string]any
	c.Assert(json.Unmarshal(b, &got), qt.IsNil)
	c.Assert(got["firmName"], qt.Equals, "Acme Traders")
	c.Assert(got["openingBalance"], qt.Equals, float64(150))
	_, hasID := got["id"]
	c.Assert(hasID, qt.IsFalse)
}
