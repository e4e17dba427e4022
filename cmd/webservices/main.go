// Command webservices is a terminal front end for the payment gateway
// client: it logs in, runs transaction queries and refunds, and edits the
// transaction table column settings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOpts carries the flag values shared by every subcommand.
type rootOpts struct {
	gatewayURL   string
	settingsPath string
	storePath    string
	logLevel     string
	username     string
	password     string
}

func (o *rootOpts) newApp() *client.App {
	cfg := client.DefaultConfig()
	if o.gatewayURL != "" {
		cfg.GatewayURL = o.gatewayURL
	}
	if o.settingsPath != "" {
		cfg.SettingsPath = o.settingsPath
	}
	if o.storePath != "" {
		cfg.StorePath = o.storePath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	logger := slog.New(slog.HandlerOptions{
		Level: client.ParseLevel(cfg.LogLevel),
	}.NewTextHandler(os.Stderr))
	return client.NewApp(logger, cfg)
}

// credentials returns the gateway login, flags first, env as fallback.
func (o *rootOpts) credentials() (string, string, error) {
	user, pass := o.username, o.password
	if user == "" {
		user = os.Getenv("WS_USERNAME")
	}
	if pass == "" {
		pass = os.Getenv("WS_PASSWORD")
	}
	if user == "" || pass == "" {
		return "", "", fmt.Errorf("gateway credentials required: set --user/--pass or WS_USERNAME/WS_PASSWORD")
	}
	return user, pass, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:           "webservices",
		Short:         "Payment gateway webservices client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.gatewayURL, "gateway", "", "gateway base URL")
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "column settings file")
	root.PersistentFlags().StringVar(&opts.storePath, "store", "", "transaction store file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warning or error")
	root.PersistentFlags().StringVar(&opts.username, "user", "", "gateway username")
	root.PersistentFlags().StringVar(&opts.password, "pass", "", "gateway password")

	root.AddCommand(
		newLoginCmd(opts),
		newQueryCmd(opts),
		newSubmitCmd(opts, "auth", "Authorise a payment"),
		newSubmitCmd(opts, "check", "Save a card on the gateway without charging it"),
		newSubmitCmd(opts, "update", "Update a settled or pending transaction"),
		newSubmitCmd(opts, "custom", "Send a free-form request"),
		newRefundCmd(opts),
		newFieldsCmd(opts),
		newHeadersCmd(opts),
		newTransactionsCmd(opts),
	)
	return root
}
