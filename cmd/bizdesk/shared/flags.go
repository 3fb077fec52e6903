package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/go-ports/bizdesk/internal/models"
)

// AmountVar binds an amount flag. Unlike the lenient wire parsing, flag
// values must be valid decimals.
func AmountVar(f *pflag.FlagSet, p *models.Amount, name, usage string) {
	f.Var(&amountValue{p: p}, name, usage)
}

// OptionalAmountVar binds an amount flag whose pointer stays nil unless the
// flag is given.
func OptionalAmountVar(f *pflag.FlagSet, p **models.Amount, name, usage string) {
	f.Var(&optionalAmountValue{p: p}, name, usage)
}

// IDVar binds an id flag.
func IDVar(f *pflag.FlagSet, p *models.ID, name, usage string) {
	f.Var(&idValue{p: p}, name, usage)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

type amountValue struct{ p *models.Amount }

func (v *amountValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v *amountValue) Set(s string) error {
	d, err := parseDecimal(s)
	if err != nil {
		return err
	}
	*v.p = models.NewAmount(d)
	return nil
}

func (*amountValue) Type() string { return "amount" }

type optionalAmountValue struct{ p **models.Amount }

func (v *optionalAmountValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return (*v.p).String()
}

func (v *optionalAmountValue) Set(s string) error {
	d, err := parseDecimal(s)
	if err != nil {
		return err
	}
	a := models.NewAmount(d)
	*v.p = &a
	return nil
}

func (*optionalAmountValue) Type() string { return "amount" }

type idValue struct{ p *models.ID }

func (v *idValue) String() string {
	if v.p == nil {
		return ""
	}
	return v.p.String()
}

func (v *idValue) Set(s string) error {
	*v.p = models.ID(strings.TrimSpace(s))
	return nil
}

func (*idValue) Type() string { return "id" }

// RequireYes refuses a destructive command unless --yes was given.
func RequireYes(yes bool, what string) error {
	if !yes {
		return fmt.Errorf("refusing to delete %s without --yes", what)
	}
	return nil
}
