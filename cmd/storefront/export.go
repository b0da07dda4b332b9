package main

import (
	"context"
	"path"
	"time"

	"github.com/spf13/cobra"

	storeerrors "github.com/vango-dev/storefront/internal/errors"
	"github.com/vango-dev/storefront/internal/shop"
	"github.com/vango-dev/storefront/pkg/export"
)

func exportCmd() *cobra.Command {
	var (
		bucket  string
		key     string
		region  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a snapshot of the page to S3",
		Long: `Render the storefront page and upload the HTML to S3.

Credentials come from the default AWS chain (environment, shared config,
instance role). Bucket, region and key prefix default to the "export"
section of storefront.json.

Examples:
  storefront export --bucket previews
  storefront export --bucket previews --key latest.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if bucket == "" {
				bucket = cfg.Export.Bucket
			}
			if region == "" {
				region = cfg.Export.Region
			}
			if bucket == "" {
				return storeerrors.New("E302").
					With("field", "export.bucket").
					WithSuggestion("Pass --bucket or set export.bucket in storefront.json")
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
				return storeerrors.FromError(err, "E301").WithDetail("The page could not be captured.")
			}
			if key == "" {
				key = path.Join(cfg.Export.Prefix, export.DefaultKey(page))
			}

			client, err := export.NewClient(ctx, region)
			if err != nil {
				return err
			}
			key, err = export.Upload(ctx, client, bucket, key, page)
			if err != nil {
				return err
			}
			success("Uploaded s3://%s/%s", bucket, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (default from storefront.json)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default snapshots/<timestamp>.html)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from storefront.json or the AWS chain)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for asynchronous panels")

	return cmd
}
