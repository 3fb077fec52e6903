// Package rootcmd wires the root cobra.Command for the bizdesk CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	bankscmd "github.com/go-ports/bizdesk/cmd/bizdesk/banks"
	cachecmd "github.com/go-ports/bizdesk/cmd/bizdesk/cache"
	categoriescmd "github.com/go-ports/bizdesk/cmd/bizdesk/categories"
	clientscmd "github.com/go-ports/bizdesk/cmd/bizdesk/clients"
	configcmd "github.com/go-ports/bizdesk/cmd/bizdesk/config"
	dashboardcmd "github.com/go-ports/bizdesk/cmd/bizdesk/dashboard"
	employeescmd "github.com/go-ports/bizdesk/cmd/bizdesk/employees"
	expensescmd "github.com/go-ports/bizdesk/cmd/bizdesk/expenses"
	mcpcmd "github.com/go-ports/bizdesk/cmd/bizdesk/mcp"
	paymentscmd "github.com/go-ports/bizdesk/cmd/bizdesk/payments"
	productscmd "github.com/go-ports/bizdesk/cmd/bizdesk/products"
	purchasescmd "github.com/go-ports/bizdesk/cmd/bizdesk/purchases"
	quotecmd "github.com/go-ports/bizdesk/cmd/bizdesk/quote"
	receiptscmd "github.com/go-ports/bizdesk/cmd/bizdesk/receipts"
	salariescmd "github.com/go-ports/bizdesk/cmd/bizdesk/salaries"
	salescmd "github.com/go-ports/bizdesk/cmd/bizdesk/sales"
	servecmd "github.com/go-ports/bizdesk/cmd/bizdesk/serve"
	setupcmd "github.com/go-ports/bizdesk/cmd/bizdesk/setup"
	"github.com/go-ports/bizdesk/cmd/bizdesk/shared"
	uninstallcmd "github.com/go-ports/bizdesk/cmd/bizdesk/uninstall"
	vendorscmd "github.com/go-ports/bizdesk/cmd/bizdesk/vendors"
	versioncmd "github.com/go-ports/bizdesk/cmd/bizdesk/version"
)

// New creates and returns the root cobra.Command for the bizdesk CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "bizdesk",
		Short:         "bizdesk: clients, vendors, stock, sales and books from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	f := root.PersistentFlags()
	f.StringVar(&ctx.Home, "home", "",
		"Override bizdesk home directory (default: $BIZDESK_HOME env → persisted config → ~/.bizdesk)")
	f.StringVar(&ctx.APIURL, "api-url", "",
		"Business API base URL (default: $BIZDESK_API_URL, $API_BASE_URL or api.base_url)")
	f.StringVarP(&ctx.Output, "output", "o", "", "Output format: table, json or csv (default: output.format)")
	f.StringVar(&ctx.Select, "select", "", "JSONPath applied to the JSON result, e.g. '$[*].name'")
	f.StringVar(&ctx.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		clientscmd.New(ctx).Cmd(),
		vendorscmd.New(ctx).Cmd(),
		productscmd.New(ctx).Cmd(),
		bankscmd.New(ctx).Cmd(),
		salescmd.New(ctx).Cmd(),
		purchasescmd.New(ctx).Cmd(),
		paymentscmd.New(ctx).Cmd(),
		receiptscmd.New(ctx).Cmd(),
		employeescmd.New(ctx).Cmd(),
		salariescmd.New(ctx).Cmd(),
		expensescmd.New(ctx).Cmd(),
		categoriescmd.New(ctx).Cmd(),
		dashboardcmd.New(ctx).Cmd(),
		quotecmd.New(ctx).Cmd(),
		cachecmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		servecmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}
