package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	layerNameColor = color.New(color.FgCyan, color.Bold)
	headingColor   = color.New(color.FgBlue, color.Bold)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <plan.json>",
	Short: "Print a human-readable build plan summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readPlan(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s (%d)\n", headingColor.Sprint("Layers"), len(plan.Layers))
		for _, l := range plan.Layers {
			fmt.Fprintf(out, "  %s\n", layerNameColor.Sprint(l.Name))
			for _, e := range l.Entries {
				fmt.Fprintf(out, "    %s -> %s (%o)\n", e.Source, e.Destination, e.Mode.Perm())
			}
		}

		fmt.Fprintf(out, "%s\n", headingColor.Sprint("Entrypoint"))
		if plan.HasEntrypoint() {
			fmt.Fprintf(out, "  %s\n", strings.Join(plan.Entrypoint, " "))
		} else {
			fmt.Fprintln(out, "  (none)")
		}

		if len(plan.Metadata) > 0 {
			fmt.Fprintf(out, "%s\n", headingColor.Sprint("Metadata"))
			for k, v := range plan.Metadata {
				fmt.Fprintf(out, "  %s=%s\n", k, v)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
