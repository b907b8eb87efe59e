// Package postbank handles Postbank CSV export processing commands
package postbank

import (
	"github.com/spf13/cobra"

	"hbconv/cmd/common"
	"hbconv/cmd/root"
	"hbconv/internal/postbankparser"
)

// Cmd represents the postbank command
var Cmd = &cobra.Command{
	Use:   "postbank",
	Short: "Convert Postbank CSV exports",
	Long:  `Convert Postbank CSV export files to the HomeBank CSV format.`,
	Run:   postbankFunc,
}

func postbankFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Postbank command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Validate {
		if err := common.Validate(postbankparser.ValidateFormat, root.SharedFlags.Input, root.Log); err != nil {
			root.Log.Fatalf("%v", err)
		}
	}

	err := common.ProcessFile("postbank", root.SharedFlags.Input, root.SharedFlags.Output,
		root.Cfg.Output.Currency, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing Postbank CSV file: %v", err)
	}
	root.Log.Info("Postbank to HomeBank CSV conversion completed successfully!")
}
