package service

// White-box testing required: normalizeSalary reads the unexported clock and
// inRange/filterReceipts are helpers of ClientStatement whose edge cases are
// not reachable through the fake API seed.

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC) }
}

// ---------------------------------------------------------------------------
// normalizeSalary
// ---------------------------------------------------------------------------

func TestNormalizeSalary_Defaults(t *testing.T) {
	c := qt.New(t)
	s := &Service{now: fixedClock()}

	in := &models.SalaryInput{EmployeeID: "1", BankID: "1", Amount: models.AmountFromFloat(100), Status: " PAID "}
	c.Assert(s.normalizeSalary(in), qt.IsNil)
	c.Assert(in.Month, qt.Equals, "2024-07-01")
	c.Assert(in.PaymentDate, qt.Equals, "2024-07-15")
	c.Assert(in.Status, qt.Equals, models.SalaryPaid)
}

func TestNormalizeSalary_DateInsideMonth(t *testing.T) {
	c := qt.New(t)
	s := &Service{now: fixedClock()}

	in := &models.SalaryInput{EmployeeID: "1", BankID: "1", Amount: models.AmountFromFloat(100), Month: "2024-02-29", PaymentDate: "2024-03-01"}
	c.Assert(s.normalizeSalary(in), qt.IsNil)
	c.Assert(in.Month, qt.Equals, "2024-02-01")
	c.Assert(in.Status, qt.Equals, models.SalaryPending)
}

// ---------------------------------------------------------------------------
// inRange / filterReceipts
// ---------------------------------------------------------------------------

func TestInRange(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		ts   string
		r    api.DateRange
		want bool
	}{
		{"open range", "2024-03-02 10:00:00", api.DateRange{}, true},
		{"inclusive lower bound", "2024-03-01 00:00:01", api.DateRange{From: "2024-03-01"}, true},
		{"inclusive upper bound", "2024-03-31 23:59:59", api.DateRange{To: "2024-03-31"}, true},
		{"before range", "2024-02-28", api.DateRange{From: "2024-03-01"}, false},
		{"after range", "2024-04-01 08:00:00", api.DateRange{From: "2024-03-01", To: "2024-03-31"}, false},
		{"undated row with open range", "", api.DateRange{}, true},
		{"undated row with bounds", "", api.DateRange{From: "2024-03-01"}, false},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(inRange(tc.ts, tc.r), qt.Equals, tc.want)
		})
	}
}

func TestFilterReceipts_DropsOtherClients(t *testing.T) {
	c := qt.New(t)

	got := filterReceipts([]models.Receipt{
		{ID: "1", ClientID: "1", CreatedAt: "2024-03-02 10:00:00"},
		{ID: "2", ClientID: "2", CreatedAt: "2024-03-02 10:00:00"},
		{ID: "3", CreatedAt: "2024-03-03"},
	}, "1", api.DateRange{})
	c.Assert(got, qt.HasLen, 2)
	c.Assert(got[0].ID, qt.Equals, models.ID("1"))
	c.Assert(got[1].ID, qt.Equals, models.ID("3"))
}
