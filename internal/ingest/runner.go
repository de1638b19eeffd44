// Package ingest imports a directory of plain-text letters as writing
// samples for one owner.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/categorizer"
	"github.com/MikeSquared-Agency/letterforge/internal/pipeline"
)

type Config struct {
	Dir       string
	Owner     string
	StatePath string
	DryRun    bool
}

type SampleSaver interface {
	SaveSample(ctx context.Context, owner, content string) (pipeline.Sample, error)
}

type Summary struct {
	Discovered int
	Imported   int
	Duplicates int
	Empty      int
	Unanalyzed int
	Errors     int
}

type Runner struct {
	cfg    Config
	saver  SampleSaver
	out    io.Writer
	logger *slog.Logger
}

func NewRunner(cfg Config, saver SampleSaver, out io.Writer, logger *slog.Logger) *Runner {
	if cfg.StatePath == "" {
		cfg.StatePath = DefaultStatePath
	}
	return &Runner{cfg: cfg, saver: saver, out: out, logger: logger}
}

// Run imports every *.txt file under the configured directory in path
// order. State is saved after each file. A file whose sample was saved
// but not analyzed still counts as processed; Reanalyze picks it up.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	state, err := LoadState(r.cfg.StatePath)
	if err != nil {
		return sum, fmt.Errorf("load state: %w", err)
	}

	files, err := discover(r.cfg.Dir)
	if err != nil {
		return sum, fmt.Errorf("discover files: %w", err)
	}
	sum.Discovered = len(files)
	r.logger.Info("files discovered", "dir", r.cfg.Dir, "files", len(files))

	for _, path := range files {
		select {
		case <-ctx.Done():
			r.logger.Info("import interrupted, saving state")
			_ = state.Save()
			return sum, ctx.Err()
		default:
		}

		if state.IsProcessed(r.cfg.Owner, path) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("failed to read file", "path", path, "error", err)
			state.AddError(fmt.Sprintf("read %s: %v", path, err))
			sum.Errors++
			continue
		}

		content := strings.TrimSpace(string(data))
		if content == "" {
			sum.Empty++
			state.MarkProcessed(r.cfg.Owner, path)
			continue
		}

		hash := contentHash(content)
		if state.SeenContent(r.cfg.Owner, hash) {
			r.logger.Info("skipping duplicate sample", "path", path)
			sum.Duplicates++
			state.MarkProcessed(r.cfg.Owner, path)
			continue
		}

		if r.cfg.DryRun {
			fmt.Fprintf(r.out, "would import %s (%d bytes)\n", path, len(content))
			continue
		}

		sample, err := r.saver.SaveSample(ctx, r.cfg.Owner, content)
		var ae *categorizer.AnalysisError
		switch {
		case errors.As(err, &ae):
			r.logger.Warn("sample saved without analysis", "path", path, "sample_id", sample.ID, "error", err)
			state.AddError(fmt.Sprintf("analyze %s: %v", path, err))
			sum.Unanalyzed++
		case err != nil:
			r.logger.Error("import failed", "path", path, "error", err)
			state.AddError(fmt.Sprintf("import %s: %v", path, err))
			sum.Errors++
			continue
		}

		sum.Imported++
		state.SamplesSaved++
		state.MarkContent(r.cfg.Owner, hash)
		state.MarkProcessed(r.cfg.Owner, path)
		if err := state.Save(); err != nil {
			return sum, fmt.Errorf("save state: %w", err)
		}
		r.logger.Info("sample imported", "path", path, "sample_id", sample.ID, "owner", r.cfg.Owner)
	}

	if !r.cfg.DryRun {
		if err := state.Save(); err != nil {
			return sum, fmt.Errorf("save state: %w", err)
		}
	}

	r.logger.Info("import complete",
		"imported", sum.Imported,
		"duplicates", sum.Duplicates,
		"unanalyzed", sum.Unanalyzed,
		"errors", sum.Errors,
		"dry_run", r.cfg.DryRun,
	)

	fmt.Fprintf(r.out, "\n=== Import Summary ===\n")
	fmt.Fprintf(r.out, "Files discovered: %d\n", sum.Discovered)
	fmt.Fprintf(r.out, "Samples imported: %d\n", sum.Imported)
	fmt.Fprintf(r.out, "Duplicates skipped: %d\n", sum.Duplicates)
	fmt.Fprintf(r.out, "Awaiting analysis: %d\n", sum.Unanalyzed)
	fmt.Fprintf(r.out, "Errors: %d\n", sum.Errors)
	if r.cfg.DryRun {
		fmt.Fprintf(r.out, "Mode: DRY RUN (nothing saved)\n")
	}
	fmt.Fprintf(r.out, "State file: %s\n", state.Path())

	return sum, nil
}

func discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
