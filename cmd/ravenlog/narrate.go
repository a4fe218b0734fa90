package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/ravenlog/pkg/narrate"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
)

func narrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "narrate [log.jsonl]",
		Short: "Print a log as plain-text sentences",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNarrate,
	}
}

func runNarrate(cmd *cobra.Command, args []string) error {
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
	resolved, _ := resolveLog(resolve.New(catalog), records)

	out := cmd.OutOrStdout()
	for i, re := range resolved {
		if records[i].timed {
			fmt.Fprintln(out, narrate.Entry(re))
		} else {
			fmt.Fprintln(out, narrate.Line(re))
		}
	}
	for _, i := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", i)
	}
	return nil
}
