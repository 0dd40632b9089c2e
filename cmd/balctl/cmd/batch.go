package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Analyze many blobs in parallel",
	Long: "Unpack each blob in its own tree context, one worker per blob. " +
		"Contexts share nothing, so workers never contend.",
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	factory, err := getFactory()
	if err != nil {
		return err
	}

	p := pool.New().WithMaxGoroutines(viper.GetInt("concurrency")).WithContext(cmd.Context())
	for _, path := range args {
		p.Go(func(ctx context.Context) error {
			data, err := loadBlob(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			treeCtx, err := factory.Create(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			model, err := treeCtx.Root().Unpack()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			slog.Info("analyzed",
				"path", path,
				"type", treeCtx.Root().InterfaceType(),
				"size", treeCtx.Root().Size(),
				"children", len(model.Fields()))
			return nil
		})
	}
	return p.Wait()
}
