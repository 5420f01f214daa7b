package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	installermeta "github.com/deploymenttheory/installer-metadata"
	"github.com/deploymenttheory/installer-metadata/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "installer-metadata [file]",
		Short: "Extract installer metadata from a binary file",
		Long: `Identifies a binary as MSI, DMG, DEB, RPM, or PE and extracts its
product metadata (name, version, publisher, and format-specific fields),
printed as JSON.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: setupLogging,
		RunE:             runAnalyze,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose debugging output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stdout")

	rootCmd.Flags().BoolP("info-only", "i", false, "report only Format and Size, skipping full extraction")

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("Error executing command: %v", err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
		logger.Infof("Debug logging enabled")
	} else {
		logger.SetLevel(logger.LevelInfo)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		logger.DisableColors()
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("Failed to open log file: %v", err)
		} else {
			logger.DisableColors()
			logger.Initialize(file, file, file, file)
			logger.Infof("Logging to file: %s", logFile)
		}
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	logger.Debugf("read %d bytes from %s", len(data), path)

	infoOnly, _ := cmd.Flags().GetBool("info-only")
	if infoOnly {
		fmt.Println(installermeta.Info(data))
		return nil
	}

	fmt.Println(installermeta.Analyze(data))
	return nil
}
