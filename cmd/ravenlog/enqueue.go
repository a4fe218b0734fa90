package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/ravenlog/internal/services/queue"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	pkgqueue "github.com/jwebster45206/ravenlog/pkg/queue"
)

func enqueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue --game <id> [log.jsonl]",
		Short: "Push a log file onto a game's ingest queue",
		Long: "Reads a JSON-lines log and queues each record for the ingest workers.\n" +
			"Nothing is queued if any line fails to decode.",
		Args: cobra.MaximumNArgs(1),
		RunE: runEnqueue,
	}
	defaultURL := os.Getenv("REDIS_URL")
	if defaultURL == "" {
		defaultURL = "localhost:6379"
	}
	cmd.Flags().String("redis-url", defaultURL, "redis address or URL")
	cmd.Flags().String("game", "", "game id (uuid)")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("game")
	gameID, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", raw, err)
	}
	redisURL, _ := cmd.Flags().GetString("redis-url")

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	client, err := queue.NewClient(ctx, redisURL, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	return enqueueLog(ctx, queue.NewIngestQueue(client), gameID, in, cmd.OutOrStdout())
}

// enqueueLog decodes the whole log first so a bad file queues nothing, then
// pushes one record request per line in file order.
func enqueueLog(ctx context.Context, q *queue.IngestQueue, gameID uuid.UUID, in io.Reader, out io.Writer) error {
	records, issues, err := readLog(in)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		fmt.Fprintf(out, "Errors (%d):\n", len(issues))
		for _, i := range issues {
			fmt.Fprintf(out, "  - %s\n", i)
		}
		return fmt.Errorf("log has unreadable lines, nothing queued")
	}
	if len(records) == 0 {
		return fmt.Errorf("log is empty")
	}

	for _, rec := range records {
		data, err := gamelog.Encode(rec.entry.Event)
		if err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
		if err := q.Enqueue(ctx, pkgqueue.NewRecordRequest(gameID, data)); err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
	}

	depth, err := q.Depth(ctx, gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Queued %d records for game %s (depth %d).\n", len(records), gameID, depth)
	return nil
}
