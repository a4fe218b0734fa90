package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "ravenlog",
		Short:        "Check and read game logs offline",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().String("catalog", "data/catalogs/base.yaml", "catalog file used to resolve ids")
	root.AddCommand(validateCmd())
	root.AddCommand(narrateCmd())
	root.AddCommand(enqueueCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
