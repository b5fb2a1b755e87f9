package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/visionmeet/internal/config"
	"github.com/nguyentantai21042004/visionmeet/internal/diarizer"
	"github.com/nguyentantai21042004/visionmeet/internal/export"
	"github.com/nguyentantai21042004/visionmeet/internal/index"
	"github.com/nguyentantai21042004/visionmeet/internal/insight"
	"github.com/nguyentantai21042004/visionmeet/internal/logger"
	"github.com/nguyentantai21042004/visionmeet/internal/media"
	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
	"github.com/nguyentantai21042004/visionmeet/internal/pipeline"
	"github.com/nguyentantai21042004/visionmeet/internal/transcriber"
	"github.com/nguyentantai21042004/visionmeet/internal/watcher"
	"github.com/nguyentantai21042004/visionmeet/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	watchMode := flag.Bool("watch", false, "watch the inbox directory for new recordings")
	searchQuery := flag.String("search", "", "search a processed meeting instead of processing")
	meetingID := flag.String("meeting", "", "meeting identifier for -search")
	exportDocx := flag.Bool("export", false, "write docx report and transcript to the output directory")
	actionItems := flag.Bool("actions", false, "extract action items after summarizing")
	keyDecisions := flag.Bool("decisions", false, "extract key decisions after summarizing")
	flag.Parse()

	opts := outputOptions{export: *exportDocx, actions: *actionItems, decisions: *keyDecisions}

	ctx := context.Background()

	// .env is optional; real deployments set the variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	idx, err := index.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to open semantic index: %v", err)
		os.Exit(1)
	}
	defer idx.Close()

	if *searchQuery != "" {
		if err := runSearch(ctx, idx, *searchQuery, *meetingID, os.Stdout); err != nil {
			log.Error(ctx, "Search failed: %v", err)
			os.Exit(1)
		}
		return
	}

	exec := executor.New()
	generator, err := insight.New(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create insight generator: %v", err)
		os.Exit(1)
	}

	pipe := pipeline.New(
		cfg,
		media.New(cfg, exec, log),
		transcriber.New(cfg, exec, log),
		diarizer.New(cfg, exec, log),
		generator,
		idx,
		log,
		func(s pipeline.Stage) { log.Info(ctx, "Stage: %s", s) },
	)

	if *watchMode {
		runWatch(ctx, cfg, pipe, generator, log, opts)
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: visionmeet [flags] <recording>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		record, err := pipe.Process(ctx, path)
		if err != nil {
			log.Error(ctx, "Failed to process %s: %v", path, err)
			os.Exit(1)
		}
		emitRecord(ctx, cfg, generator, record, opts, log)
	}
}

// outputOptions selects what is rendered for each processed recording beyond
// the record itself.
type outputOptions struct {
	export    bool
	actions   bool
	decisions bool
}

func emitRecord(ctx context.Context, cfg *config.Config, gen insight.Generator, record *meeting.Record, opts outputOptions, log logger.Logger) {
	printRecord(record)

	for _, section := range extraInsights(ctx, gen, record, opts.actions, opts.decisions, log) {
		fmt.Printf("\n%s\n", section)
	}

	if opts.export {
		if err := writeExports(ctx, cfg, record, log); err != nil {
			log.Warn(ctx, "Export failed: %v", err)
		}
	}
}

// extraInsights runs the optional extraction passes. The generated summary
// feeds the prompts when available, the raw transcript otherwise; a failed
// extraction is logged and skipped, never fatal.
func extraInsights(ctx context.Context, gen insight.Generator, record *meeting.Record, actions, decisions bool, log logger.Logger) []string {
	if !actions && !decisions {
		return nil
	}

	source := record.Summary
	if source == "" {
		source = record.PlainTranscript()
	}
	if source == "" {
		return nil
	}

	var sections []string
	if actions {
		items, err := gen.ActionItems(ctx, source)
		if err != nil {
			log.Warn(ctx, "Action item extraction failed: %v", err)
		} else {
			sections = append(sections, "Action Items:\n"+items)
		}
	}
	if decisions {
		found, err := gen.KeyDecisions(ctx, source)
		if err != nil {
			log.Warn(ctx, "Key decision extraction failed: %v", err)
		} else {
			sections = append(sections, "Key Decisions:\n"+found)
		}
	}
	return sections
}

// runWatch monitors the inbox until interrupted; processed recordings move to
// the archived directory.
func runWatch(ctx context.Context, cfg *config.Config, pipe pipeline.Pipeline, gen insight.Generator, log logger.Logger, opts outputOptions) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := func(ctx context.Context, filePath string) error {
		record, err := pipe.Process(ctx, filePath)
		if err != nil {
			return err
		}
		emitRecord(ctx, cfg, gen, record, opts, log)

		archived := filepath.Join(cfg.Paths.Archived, filepath.Base(filePath))
		if err := os.Rename(filePath, archived); err != nil {
			log.Warn(ctx, "Failed to archive %s: %v", filePath, err)
		}
		return nil
	}

	w, err := watcher.New(cfg.Paths.Inbox, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "VisionMeet pipeline is ready")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "VisionMeet pipeline stopped")
}

func runSearch(ctx context.Context, idx index.Index, query, meetingID string, out io.Writer) error {
	if meetingID == "" {
		return fmt.Errorf("-meeting is required with -search")
	}

	indexed, err := idx.Count(meetingID)
	if err != nil {
		return err
	}
	if indexed == 0 {
		fmt.Fprintln(out, "Meeting has no indexed segments")
		return nil
	}

	results, err := idx.Search(ctx, query, meetingID)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No relevant segments found")
		return nil
	}

	fmt.Fprintf(out, "Found %d relevant segments (%d indexed):\n", len(results), indexed)
	for i, result := range results {
		fmt.Fprintf(out, "%d. %s\n", i+1, result)
	}
	return nil
}

func writeExports(ctx context.Context, cfg *config.Config, record *meeting.Record, log logger.Logger) error {
	base := strings.TrimSuffix(record.ID, filepath.Ext(record.ID))

	reportPath := filepath.Join(cfg.Paths.Output, base+"_report.docx")
	if err := export.WriteReport(record, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	transcriptPath := filepath.Join(cfg.Paths.Output, base+"_transcript.docx")
	if err := export.WriteTranscript(record, transcriptPath); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	log.Info(ctx, "Exported %s and %s", reportPath, transcriptPath)
	return nil
}

func printRecord(record *meeting.Record) {
	fmt.Printf("\n=== %s ===\n", record.ID)

	if record.Summary != "" {
		fmt.Printf("\n%s\n", record.Summary)
	} else if record.SummaryErr != "" {
		fmt.Printf("\nSummary unavailable: %s\n", record.SummaryErr)
	}

	fmt.Printf("\nSpeakers:\n")
	for _, speaker := range record.Speakers {
		duration, segments := "Unknown", "Unknown"
		if speaker.Duration != nil {
			duration = fmt.Sprintf("%ds", *speaker.Duration)
		}
		if speaker.Segments != nil {
			segments = fmt.Sprintf("%d", *speaker.Segments)
		}
		fmt.Printf("  %s - %s speaking time, %s segments\n", speaker.Name, duration, segments)
		if speaker.Sample != "" {
			fmt.Printf("    Sample: %s\n", speaker.Sample)
		}
	}

	fmt.Printf("\nTranscript: %d segments\n", len(record.Transcript))
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
