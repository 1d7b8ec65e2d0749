package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stepdriver/stepdriver/pkg/log"
	"github.com/stepdriver/stepdriver/pkg/log/sinks"
)

// BatchCmd runs every workflow file in a directory as a child process and
// writes a pass/fail report. A crashed run never takes the batch down.
type BatchCmd struct {
	Dir         string `arg:"" help:"Directory containing workflow JSON files."`
	Varfile     string `help:"The YAML varfile passed to every run." default:"sdvars.yml"`
	Profile     string `help:"Browser profile directory passed to every run." default:".stepdriver/profile"`
	Headless    bool   `help:"Run browsers without visible windows."`
	DownloadDir string `help:"Default download directory passed to every run." default:"downloads"`
	Report      string `help:"Path of the batch report file." default:"batch_report.txt"`
}

type batchResult struct {
	File     string
	Err      error
	Duration time.Duration
}

func (b *BatchCmd) Run() error {
	consoleSink := sinks.NewConsoleSink()
	logRouter := log.NewRouter()
	logRouter.AddSink(consoleSink)
	cmdLogger := log.NewZerologAdapter(zerolog.New(logRouter).With().Timestamp().Logger())

	entries, err := os.ReadDir(b.Dir)
	if err != nil {
		return fmt.Errorf("reading workflow directory %q: %w", b.Dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			files = append(files, filepath.Join(b.Dir, entry.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no workflow files found in %q", b.Dir)
	}
	cmdLogger.Info().Int("count", len(files)).Msgf("Running workflows from %s", b.Dir)

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}

	results := make([]batchResult, 0, len(files))
	for i, file := range files {
		cmdLogger.Info().Msgf("--- Workflow %d/%d: %s ---", i+1, len(files), file)

		args := []string{
			"run", file,
			"--varfile", b.Varfile,
			"--profile", b.Profile,
			"--download-dir", b.DownloadDir,
		}
		if b.Headless {
			args = append(args, "--headless")
		}

		start := time.Now()
		child := exec.Command(self, args...)
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		runErr := child.Run()
		elapsed := time.Since(start)

		if runErr != nil {
			cmdLogger.Error().Err(runErr).Msgf("Workflow %s failed", file)
		} else {
			cmdLogger.Info().Msgf("Workflow %s completed in %s", file, elapsed.Round(time.Second))
		}
		results = append(results, batchResult{File: file, Err: runErr, Duration: elapsed})
	}

	if err := writeBatchReport(b.Report, results); err != nil {
		cmdLogger.Error().Err(err).Msgf("Could not write report to %s", b.Report)
		return err
	}
	cmdLogger.Info().Msgf("Batch report written to %s", b.Report)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workflows failed", failed, len(results))
	}
	return nil
}

func writeBatchReport(path string, results []batchResult) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch run %s\n\n", time.Now().Format(time.RFC3339)))
	for _, r := range results {
		status := "OK"
		if r.Err != nil {
			status = fmt.Sprintf("FAILED (%v)", r.Err)
		}
		sb.WriteString(fmt.Sprintf("%-60s %-10s %s\n", r.File, r.Duration.Round(time.Second), status))
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}
