package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fetidd/webservices-frontend/client"
	"github.com/fetidd/webservices-frontend/internal/requesttype"
	"github.com/fetidd/webservices-frontend/store"
)

// dayFormat is how query start/end dates are entered on the command line.
const dayFormat = "2006-01-02"

func newLoginCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and fetch today's transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.newApp()
			defer app.Close()
			user, pass, err := opts.credentials()
			if err != nil {
				return err
			}
			if err := app.Login(cmd.Context(), user, pass); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in, %d transactions today\n", app.Store().Len())
			printTransactions(cmd, app)
			return nil
		},
	}
}

func newQueryCmd(opts *rootOpts) *cobra.Command {
	var startArg, endArg string
	var filterArgs []string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a transaction query over a date range",
		Long:  "Run a transaction query over a date range.\n\n" + requesttypeInstructions(requesttype.TransactionQuery),
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := time.Parse(dayFormat, startArg)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			end, err := time.Parse(dayFormat, endArg)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
			end = end.Add(24*time.Hour - time.Second)
			filters, err := parsePairs(filterArgs)
			if err != nil {
				return err
			}

			app := opts.newApp()
			defer app.Close()
			user, pass, err := opts.credentials()
			if err != nil {
				return err
			}
			if err := app.Login(cmd.Context(), user, pass); err != nil {
				return err
			}
			found, err := app.Query(cmd.Context(), start, end, filters)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "found %d transactions\n", found)
			printTransactions(cmd, app)
			return nil
		},
	}
	today := time.Now().Format(dayFormat)
	cmd.Flags().StringVar(&startArg, "start", today, "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endArg, "end", today, "end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil,
		"field=value filter; comma-separate multiple values, repeat for more fields")
	return cmd
}

// submitTypes maps the submit subcommand names onto request types.
var submitTypes = map[string]requesttype.RequestType{
	"auth":   requesttype.Auth,
	"check":  requesttype.AccountCheck,
	"update": requesttype.TransactionUpdate,
	"custom": requesttype.Custom,
}

func newSubmitCmd(opts *rootOpts, name, short string) *cobra.Command {
	rt := submitTypes[name]
	var setArgs []string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  short + ".\n\n" + requesttypeInstructions(rt),
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := parsePairs(setArgs)
			if err != nil {
				return err
			}
			app := opts.newApp()
			defer app.Close()
			user, pass, err := opts.credentials()
			if err != nil {
				return err
			}
			if err := app.Login(cmd.Context(), user, pass); err != nil {
				return err
			}
			results, err := app.Submit(cmd.Context(), rt, values)
			if err != nil {
				return err
			}
			printResults(cmd, results)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&setArgs, "set", nil, "field=value for the request; repeatable")
	return cmd
}

func newRefundCmd(opts *rootOpts) *cobra.Command {
	var parent, site string
	var selected []string
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund one transaction or a stored selection",
		Long:  "Refund one transaction or a stored selection.\n\n" + requesttypeInstructions(requesttype.Refund),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.newApp()
			defer app.Close()
			user, pass, err := opts.credentials()
			if err != nil {
				return err
			}
			if err := app.Login(cmd.Context(), user, pass); err != nil {
				return err
			}

			var results []client.Result
			if len(selected) > 0 {
				var txns []store.Transaction
				for _, ref := range selected {
					txn, ok := app.Store().Get(ref)
					if !ok {
						return fmt.Errorf("transaction %s is not in the store; run a query first", ref)
					}
					txns = append(txns, txn)
				}
				results, err = app.RefundSelection(cmd.Context(), txns)
			} else {
				results, err = app.Submit(cmd.Context(), requesttype.Refund, map[string]string{
					"parenttransactionreference": parent,
					"sitereference":              site,
				})
			}
			if err != nil {
				return err
			}
			printResults(cmd, results)
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "parent transaction reference to refund")
	cmd.Flags().StringVar(&site, "site", "", "site reference of the transaction")
	cmd.Flags().StringSliceVar(&selected, "selected", nil, "stored transaction references to refund")
	return cmd
}

// parsePairs turns repeated field=value arguments into a value map.
func parsePairs(args []string) (map[string]string, error) {
	values := map[string]string{}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		values[field] = value
	}
	return values, nil
}

func printResults(cmd *cobra.Command, results []client.Result) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tERROR\t%v\n", res.Reference, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tOK\t%s\n", res.Reference, res.Response.RequestTypeDescription)
	}
}

func printTransactions(cmd *cobra.Command, app *client.App) {
	columns := app.Schema().ActiveColumns()
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = app.Schema().Label(col)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, "\t"))
	for _, txn := range app.Store().All() {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = txn[col]
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
	}
}
