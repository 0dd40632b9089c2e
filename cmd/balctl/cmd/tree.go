package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redballoonsecurity/bal/analyzers"
)

var treeCmd = &cobra.Command{
	Use:   "tree <path|oci://ref>",
	Short: "Render a blob's structure",
	Long:  "Unpack a blob into its typed tree and render it, as text or as visualizer JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var treeJSON bool

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "emit the visualizer summary as JSON")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	factory, err := getFactory()
	if err != nil {
		return err
	}

	data, err := loadBlob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ctx, err := factory.Create(data)
	if err != nil {
		return err
	}

	if treeJSON {
		visualizer, err := ctx.Analyzer(analyzers.Visualizer)
		if err != nil {
			return err
		}
		summary, err := visualizer.Analyze(ctx.Root())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if _, err := ctx.Root().Unpack(); err != nil {
		return err
	}
	fmt.Println(ctx.Root().Render(false))
	return nil
}
