package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
	"github.com/fetidd/webservices-frontend/schema"
)

func requesttypeInstructions(rt requesttype.RequestType) string {
	if text := schema.Instructions(rt); text != "" {
		return text
	}
	return "No instructions for this request type."
}

func newFieldsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <requesttype>",
		Short: "List the fields a request type accepts and requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := requesttype.Parse(args[0])
			if err != nil {
				return err
			}
			app := opts.newApp()
			defer app.Close()
			s := app.Schema()

			required := map[string]bool{}
			for _, name := range s.RequiredFieldsFor(rt) {
				required[name] = true
			}
			fmt.Fprintln(cmd.OutOrStdout(), requesttypeInstructions(rt))
			fmt.Fprintln(cmd.OutOrStdout())
			for _, name := range s.FieldsFor(rt) {
				marker := " "
				if required[name] {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-30s%s\n", marker, name, s.Label(name))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\n* required")
			return nil
		},
	}
}

func newTransactionsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "transactions",
		Short: "Show the stored transactions from the last query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.newApp()
			defer app.Close()
			printTransactions(cmd, app)
			return nil
		},
	}
}

// newHeadersCmd groups the column-settings operations. Each invocation is
// one edit session: open the editor, make the change, apply and save.
func newHeadersCmd(opts *rootOpts) *cobra.Command {
	headers := &cobra.Command{
		Use:   "headers",
		Short: "Edit which fields show as transaction table columns",
	}
	headers.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show active columns in order, then the inactive fields",
			RunE: func(cmd *cobra.Command, _ []string) error {
				app := opts.newApp()
				defer app.Close()
				s := app.Schema()
				active := map[string]bool{}
				for i, name := range s.ActiveColumns() {
					active[name] = true
					fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-30s%s\n", i, name, s.Label(name))
				}
				fmt.Fprintln(cmd.OutOrStdout())
				for _, name := range s.Names() {
					if !active[name] {
						fmt.Fprintf(cmd.OutOrStdout(), " -  %-30s%s\n", name, s.Label(name))
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <field> <on|off>",
			Short: "Activate or deactivate a column",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				state, err := parseOnOff(args[1])
				if err != nil {
					return err
				}
				app := opts.newApp()
				defer app.Close()
				ed := app.OpenEditor()
				ed.Toggle(args[0], state)
				ed.Apply()
				return ed.Save()
			},
		},
		&cobra.Command{
			Use:   "move <field> <up|down>",
			Short: "Move a column one slot up or down",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := parseDirection(args[1])
				if err != nil {
					return err
				}
				app := opts.newApp()
				defer app.Close()
				ed := app.OpenEditor()
				ed.Move(args[0], dir)
				ed.Apply()
				return ed.Save()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default columns and delete the saved settings",
			RunE: func(cmd *cobra.Command, _ []string) error {
				app := opts.newApp()
				defer app.Close()
				return app.OpenEditor().Reset()
			},
		},
	)
	return headers
}

func parseOnOff(arg string) (bool, error) {
	switch arg {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func parseDirection(arg string) (schema.Direction, error) {
	switch arg {
	case "up":
		return schema.Up, nil
	case "down":
		return schema.Down, nil
	}
	return schema.Up, fmt.Errorf("expected up or down, got %q", arg)
}
