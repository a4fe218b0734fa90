package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
)

// maxLineBytes bounds one JSON line.
const maxLineBytes = 1 << 20

// record is one line of a log file: either a stored entry
// ({"time":...,"data":{...}}) or a bare wire record ({"type":...}).
type record struct {
	line  int
	timed bool
	entry gamelog.Entry
}

// issue is a line that could not be read or resolved.
type issue struct {
	line int
	err  error
}

func (i issue) String() string {
	return fmt.Sprintf("line %d: %v", i.line, i.err)
}

// readLog reads a JSON-lines log. Blank lines are skipped; bad lines become
// issues and reading continues.
func readLog(r io.Reader) ([]record, []issue, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []record
	var issues []issue
	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			issues = append(issues, issue{line: n, err: err})
			continue
		}
		rec.line = n
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading log: %w", err)
	}
	return records, issues, nil
}

func parseLine(line []byte) (record, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(line, &wrapper); err == nil {
		if _, ok := wrapper["data"]; ok {
			var entry gamelog.Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				return record{}, err
			}
			return record{timed: true, entry: entry}, nil
		}
	}
	e, err := gamelog.Decode(line)
	if err != nil {
		return record{}, err
	}
	return record{entry: gamelog.Entry{Event: e}}, nil
}

// resolveLog resolves every record, collecting failures as issues.
func resolveLog(r *resolve.Resolver, records []record) ([]resolve.ResolvedEntry, []issue) {
	out := make([]resolve.ResolvedEntry, len(records))
	var issues []issue
	for i, rec := range records {
		re, err := r.ResolveEntry(rec.entry)
		if err != nil {
			issues = append(issues, issue{line: rec.line, err: err})
			re = resolve.ResolvedEntry{Time: rec.entry.Time, Kind: rec.entry.Event.Kind(), Err: err}
		}
		out[i] = re
	}
	return out, issues
}

func loadCatalog(cmd *cobra.Command) (*entity.Catalog, error) {
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}
	return entity.LoadCatalog(path)
}

// openInput opens the named file, or stdin for "-" or no argument.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}
