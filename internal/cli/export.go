package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpuguy83/nativeplan/ocibuild"
)

var exportFlags struct {
	format string
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export <plan.json>",
	Short: "Realize a build plan as an OCI image layout",
	Long: `Realize a build plan into an OCI image and write it out as an image
layout directory or tar archive. Layer source files are read from the
local filesystem.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readPlan(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		img, err := ocibuild.Realize(ctx, plan)
		if err != nil {
			return err
		}

		switch exportFlags.format {
		case "dir":
			return img.WriteDir(ctx, exportFlags.output)
		case "tar":
			f, err := os.Create(exportFlags.output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportFlags.output, err)
			}
			defer f.Close()
			if err := img.WriteTar(ctx, f); err != nil {
				return err
			}
			return f.Close()
		default:
			return fmt.Errorf("unknown format %q, expected dir or tar", exportFlags.format)
		}
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "dir", "Output format: dir or tar")
	f.StringVarP(&exportFlags.output, "output", "o", "", "Output path")
	_ = exportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(exportCmd)
}
