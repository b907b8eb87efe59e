// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hbconv/internal/config"
	"hbconv/internal/homebank"
	"hbconv/internal/postbankparser"
	"hbconv/internal/spardaparser"
)

// CommonFlags represents the flags shared by the conversion commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// SharedFlags holds the common flag values
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "hbconv",
		Short: "Convert bank CSV exports to HomeBank-compatible CSV files.",
		Long: `hbconv converts the idiosyncratic CSV exports of supported banks
(Postbank, Sparda) into the CSV format HomeBank imports: semicolon
separated, no header, with dates, payment codes and amounts rendered
exactly the way HomeBank expects them.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to hbconv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Log = config.ConfigureLogging(Cfg)

			// Set the configured logger for all parsers and the writer
			postbankparser.SetLogger(Log)
			spardaparser.SetLogger(Log)
			homebank.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
}
