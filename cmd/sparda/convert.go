// Package sparda handles Sparda-Bank CSV export processing commands
package sparda

import (
	"github.com/spf13/cobra"

	"hbconv/cmd/common"
	"hbconv/cmd/root"
	"hbconv/internal/spardaparser"
)

// Cmd represents the sparda command
var Cmd = &cobra.Command{
	Use:   "sparda",
	Short: "Convert Sparda-Bank CSV exports",
	Long: `Convert Sparda-Bank CSV export files to the HomeBank CSV format.
Sparda exports arrive as Windows-1252 and are decoded automatically.`,
	Run: spardaFunc,
}

func spardaFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Sparda command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Validate {
		if err := common.Validate(spardaparser.ValidateFormat, root.SharedFlags.Input, root.Log); err != nil {
			root.Log.Fatalf("%v", err)
		}
	}

	err := common.ProcessFile("sparda", root.SharedFlags.Input, root.SharedFlags.Output,
		root.Cfg.Output.Currency, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing Sparda CSV file: %v", err)
	}
	root.Log.Info("Sparda to HomeBank CSV conversion completed successfully!")
}
