// Package bankscmd implements the `bizdesk banks` command group.
package bankscmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/models"
)

// Command implements `bizdesk banks`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the banks command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "banks",
		Aliases: []string{"bank"},
		Short:   "List bank accounts, add one or show its ledger",
		RunE:    c.runList,
	}
	c.cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List bank accounts", Args: cobra.NoArgs, RunE: c.runList},
		newAdd(ctx),
		newLedger(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	banks, err := svc.ListBanks(cmd.Context())
	if err != nil {
		return err
	}
	p, err := c.ctx.Printer(cmd)
	if err != nil {
		return err
	}
	return p.Print(banks, func() *shared.Table {
		t := shared.NewTable("ID", "BANK", "BALANCE", "OPENING")
		for _, b := range banks {
			t.Row(b.ID.String(), b.BankName, shared.Money(b.Balance), shared.Money(b.OpeningBalance))
		}
		return t
	})
}

func newAdd(ctx *shared.Context) *cobra.Command {
	var in models.BankInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			ack, err := svc.AddBank(cmd.Context(), &in)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Ack("Added bank "+in.BankName, ack)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.BankName, "name", "", "Bank name (required)")
	shared.AmountVar(f, &in.OpeningBalance, "opening-balance", "Opening balance (required)")
	return cmd
}

func newLedger(ctx *shared.Context) *cobra.Command {
	var f api.LedgerFilter
	cmd := &cobra.Command{
		Use:   "ledger <bank-id>",
		Short: "Show the transactions of one bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.BankID = models.ID(args[0])
			svc, err := ctx.Service(cmd)
			if err != nil {
				return err
			}
			defer svc.Close()

			l, err := svc.BankLedger(cmd.Context(), f)
			if err != nil {
				return err
			}
			p, err := ctx.Printer(cmd)
			if err != nil {
				return err
			}
			return p.Print(l, func() *shared.Table {
				t := shared.NewTable("DATE", "TYPE", "PARTY", "CREDIT", "DEBIT", "DESCRIPTION")
				for _, e := range l.Ledger {
					credit, debit := "", shared.Money(e.Amount)
					if e.TransactionType == models.Credit {
						credit, debit = debit, ""
					}
					party := e.PartyName
					if e.PartyType != "" {
						party += " (" + e.PartyType + ")"
					}
					t.Row(shared.Day(e.CreatedAt), e.TransactionType, shared.OrDash(party), credit, debit,
						shared.OrDash(e.Description))
				}
				t.Footer = []string{"", l.Bank.BankName, "net " + shared.Money(l.Totals.Net),
					shared.Money(l.Totals.Credits), shared.Money(l.Totals.Debits), ""}
				return t
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.PartyType, "party-type", "", "Only client or vendor transactions")
	shared.IDVar(fl, &f.PartyID, "party-id", "Only transactions of this client or vendor")
	fl.StringVar(&f.FromDate, "from", "", "Start date (YYYY-MM-DD)")
	fl.StringVar(&f.ToDate, "to", "", "End date (YYYY-MM-DD)")
	return cmd
}
