package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported format families",
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range formats.Keys() {
			factory, err := formats.Get(key)
			if err != nil {
				continue
			}
			fmt.Printf("%s\t%s\n", key, factory.RootInterface().Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
