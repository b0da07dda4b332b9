package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
)

func errorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors [code]",
		Short: "Explain error codes",
		Long: `List every error code, or explain one.

Examples:
  storefront errors
  storefront errors E302`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, code := range storeerrors.GetAllCodes() {
					tmpl, _ := storeerrors.GetTemplate(code)
					fmt.Fprintf(out, "  %s  %-10s %s\n", code, tmpl.Category, tmpl.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := storeerrors.GetTemplate(code); !ok {
				return fmt.Errorf("unknown error code %q", args[0])
			}
			fmt.Fprint(out, storeerrors.New(code).Format())
			return nil
		},
	}
}
