package cli

import (
	"github.com/spf13/cobra"

	"github.com/cpuguy83/nativeplan"
)

var rewriteFlags struct {
	buildDir   string
	appRoot    string
	mainClass  string
	entrypoint []string
	binaryMain string
	sets       []string
	propsFile  string
	output     string
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <plan.json>",
	Short: "Rewrite a build plan around a compiled native executable",
	Long: `Rewrite a build plan so its layers are replaced by a single layer
carrying the compiled native executable, preserving extra-files layers.

The executable name is resolved from the 'imageName' property, the
configured main class, or the native build tool's main binary, in that
order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readPlan(args[0])
		if err != nil {
			return err
		}

		props, err := loadProperties(rewriteFlags.propsFile, rewriteFlags.sets)
		if err != nil {
			return err
		}

		host := &nativeplan.StaticHost{
			OutputDir: rewriteFlags.buildDir,
			Root:      rewriteFlags.appRoot,
			Main:      rewriteFlags.mainClass,
			Entry:     rewriteFlags.entrypoint,
		}
		if rewriteFlags.binaryMain != "" {
			host.Binaries = map[string]nativeplan.BinaryConfig{
				"main": {MainClass: rewriteFlags.binaryMain},
			}
		}

		out, err := nativeplan.NewRewriter(host).Rewrite(plan, props, nil)
		if err != nil {
			return err
		}

		return writePlan(out, rewriteFlags.output)
	},
}

func init() {
	f := rewriteCmd.Flags()
	f.StringVar(&rewriteFlags.buildDir, "build-dir", "build", "Host build output directory")
	f.StringVar(&rewriteFlags.appRoot, "app-root", "", "In-image application root (default /app)")
	f.StringVar(&rewriteFlags.mainClass, "main-class", "", "Configured main entry identifier")
	f.StringSliceVar(&rewriteFlags.entrypoint, "entrypoint", nil, "Caller-configured entrypoint override")
	f.StringVar(&rewriteFlags.binaryMain, "binary-main", "", "Main class of the native build tool's 'main' binary")
	f.StringArrayVar(&rewriteFlags.sets, "set", nil, "Property override as key=value (repeatable)")
	f.StringVar(&rewriteFlags.propsFile, "properties-file", "", "File with key=value properties")
	f.StringVarP(&rewriteFlags.output, "output", "o", "-", "Output path for the rewritten plan ('-' for stdout)")

	rootCmd.AddCommand(rewriteCmd)
}
