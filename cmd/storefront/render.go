package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/storefront/internal/shop"
)

func renderCmd() *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the storefront page as HTML",
		Long: `Render the storefront page once and print the HTML.

Asynchronous panels are given --timeout to settle before the page is
captured.

Examples:
  storefront render
  storefront render -o index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a := newApp(cfg)
			if err := a.start(ctx, shop.TagRecommender(shop.DefaultCatalog, 3)); err != nil {
				return err
			}
			a.waitReady(ctx, timeout)

			page, err := a.capture(ctx)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(page.HTML)
				return err
			}
			if err := os.WriteFile(output, page.HTML, 0644); err != nil {
				return err
			}
			success("Wrote %s (%d bytes)", output, len(page.HTML))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for asynchronous panels")

	return cmd
}
