package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/demo"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

func snapshotCmd(load func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <scenario>...",
		Short: "Store the HTML of every scenario step",
		Long: `Replay scenarios and store the HTML after each step as <scenario>-<n>.html.
Snapshots go to snapshot.dir, or to S3 when snapshot.bucket is set. S3
credentials and region come from the standard AWS configuration chain.

Examples:
  reconcile snapshot list portal`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return runSnapshot(cmd.Context(), store, cfg, args)
		},
	}
	return cmd
}

func runSnapshot(ctx context.Context, store snapshot.Store, cfg *config.Config, names []string) error {
	logger := cfg.Logger(os.Stderr)
	for _, name := range names {
		res, err := demo.Play(name, demo.WithLogger(logger))
		if err != nil {
			return err
		}
		for i, f := range res.Frames {
			loc, err := store.Put(ctx, fmt.Sprintf("%s-%d", name, i+1), []byte(f.HTML))
			if err != nil {
				return err
			}
			logger.Debug("snapshot stored", "scenario", name, "step", f.Step, "location", loc)
		}
		success("%s: %d snapshots", name, len(res.Frames))
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	if cfg.Snapshot.Bucket == "" {
		return snapshot.NewDiskStore(cfg.Snapshot.Dir)
	}
	client, err := newS3Client(ctx, cfg.Snapshot.Region)
	if err != nil {
		return nil, err
	}
	return snapshot.NewS3Store(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix), nil
}

// newS3Client resolves credentials and region through the SDK's default
// chain (environment, shared config and credentials files, SSO, IMDS).
// A non-empty region overrides the resolved one.
func newS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E182").WithDetail("Failed to load the AWS configuration").Wrap(err)
	}
	if awsCfg.Region == "" {
		return nil, errors.New("E182").
			WithDetail("No AWS region configured").
			WithSuggestion("Set snapshot.region, AWS_REGION or a region in the AWS profile")
	}
	return s3.NewFromConfig(awsCfg), nil
}
