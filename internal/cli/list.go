package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thruflo/todomvc-e2e/internal/scenarios"
)

var listGroup string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scenarios",
	Long: `Lists every scenario with its group, in the order run executes them.

Groups are lifecycle, all, active and completed, named after the filter the
scenario starts from.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listGroup, "group", "g", "", "only list scenarios of this group")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	selected := scenarios.All()
	if listGroup != "" {
		group, err := scenarios.ParseGroup(listGroup)
		if err != nil {
			return err
		}
		selected = scenarios.Filter(group)
	}

	nameWidth := len("SCENARIO")
	for _, s := range selected {
		nameWidth = max(nameWidth, len(s.Name))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-*s  %s\n", nameWidth, "SCENARIO", "GROUP")
	fmt.Fprintf(out, "%s  %s\n", strings.Repeat("-", nameWidth), "-----")
	for _, s := range selected {
		fmt.Fprintf(out, "%-*s  %s\n", nameWidth, s.Name, s.Group)
	}
	return nil
}
