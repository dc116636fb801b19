package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treeprobe/internal/detect"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "treeprobe",
	Short: "treeprobe identifies OS install trees and their boot artifacts",
	// SilenceErrors is used to prevent cobra from printing the error,
	// as we handle it ourselves in the Execute function.
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		detect.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Print the help message if no subcommand is provided
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log every probe the detection engine makes")
}
