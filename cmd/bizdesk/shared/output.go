package shared

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/config"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/selector"
)

// Table is the tabular rendering of a result.
type Table struct {
	Header []string
	Rows   [][]string
	Footer []string // optional totals line, table format only
}

// NewTable returns a table with the given column headers.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// Row appends one row.
func (t *Table) Row(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// Printer writes command results in the configured format.
type Printer struct {
	out        io.Writer
	format     string
	selectExpr string
}

// Print writes v. JSON output (and any --select) uses v itself; table and csv
// output use the table built by table, which is only called when needed.
func (p *Printer) Print(v any, table func() *Table) error {
	if strings.TrimSpace(p.selectExpr) != "" {
		picked, err := selector.Apply(v, p.selectExpr)
		if err != nil {
			return err
		}
		return p.selected(picked)
	}

	switch p.format {
	case config.FormatJSON:
		return p.JSON(v)
	case config.FormatCSV:
		return writeCSV(p.out, table())
	default:
		return writeTable(p.out, table())
	}
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Ack reports a successful write.
func (p *Printer) Ack(what string, ack *api.Ack) error {
	if p.format == config.FormatJSON || p.selectExpr != "" {
		return p.Print(ack, nil)
	}
	msg := what
	if ack != nil && ack.ID != "" {
		msg += " (id " + ack.ID.String() + ")"
	}
	if ack != nil && ack.Message != "" {
		msg += ": " + ack.Message
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

// selected prints a selector result: scalars bare, everything else as JSON.
func (p *Printer) selected(v any) error {
	switch x := v.(type) {
	case string:
		_, err := fmt.Fprintln(p.out, x)
		return err
	case float64, bool, nil:
		_, err := fmt.Fprintln(p.out, x)
		return err
	}
	return p.JSON(v)
}

func writeTable(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if len(t.Footer) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Footer, "\t"))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ---------------------------------------------------------------------------
// Cell formatting
// ---------------------------------------------------------------------------

// Money formats an amount with two decimals.
func Money(a models.Amount) string { return a.Fixed(2) }

// Qty formats a quantity without trailing zeros.
func Qty(a models.Amount) string { return a.String() }

// Day trims a timestamp to its date.
func Day(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

// OrDash substitutes "-" for an empty cell.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
