package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"treeprobe/internal/osdict"
)

var osLsPrefix string

var osLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List known OS releases",
	Long:  `List the OS releases the detector can report as an os-variant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := osdict.List(osLsPrefix)
		if len(entries) == 0 {
			color.Yellow("No catalog entries match prefix %q.", osLsPrefix)
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		header := []string{"ID", "LABEL", "CODENAME", "DISTRO"}
		table.Header(header)

		for _, entry := range entries {
			row := []string{
				entry.ID,
				entry.Label,
				entry.Codename,
				entry.Distro,
			}
			table.Append(row)
		}

		table.Render()

		return nil
	},
}

func init() {
	osLsCmd.Flags().StringVar(&osLsPrefix, "prefix", "", "only list ids with this prefix")
	osCmd.AddCommand(osLsCmd)
}
