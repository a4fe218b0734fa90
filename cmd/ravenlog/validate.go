package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/ravenlog/pkg/resolve"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [log.jsonl]",
		Short: "Check that every record decodes and resolves against the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	records, issues, err := readLog(in)
	if err != nil {
		return err
	}
	_, unresolved := resolveLog(resolve.New(catalog), records)
	issues = append(issues, unresolved...)

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintf(out, "%d records OK.\n", len(records))
		return nil
	}

	fmt.Fprintf(out, "Errors (%d):\n", len(issues))
	for _, i := range issues {
		fmt.Fprintf(out, "  - %s\n", i)
	}
	return fmt.Errorf("validation found errors")
}
