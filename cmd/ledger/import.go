package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/config"
	"github.com/Veraticus/pocket-ledger/internal/ofx"
	"github.com/schollz/progressbar/v3"
)

// importFiles loads every statement matched by patterns into acc. A progress
// bar is drawn on progress when there is more than one file.
func importFiles(ctx context.Context, acc ofx.Adder, patterns []string, progress io.Writer) (ofx.Result, error) {
	var total ofx.Result

	files, err := config.ResolvePaths(patterns)
	if err != nil {
		return total, common.NewUserError("Nothing to import", err)
	}

	slog.Info("Importing statements", "file_count", len(files))

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Importing statements..."),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(progress); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}

	parser := ofx.NewParser()
	for _, path := range files {
		result, err := importFile(ctx, parser, acc, path)
		if err != nil {
			return total, err
		}
		total.Added += result.Added
		total.Skipped += result.Skipped

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	common.LogInfo("Import complete", common.Fields{
		"files":   len(files),
		"added":   total.Added,
		"skipped": total.Skipped,
	})
	return total, nil
}

func importFile(ctx context.Context, parser *ofx.Parser, acc ofx.Adder, path string) (ofx.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return ofx.Result{}, common.NewUserError(fmt.Sprintf("Could not open %s", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close statement", "path", path, "error", cerr)
		}
	}()

	result, err := ofx.Import(ctx, parser, acc, f)
	if err != nil {
		common.LogError(err, "Statement import failed", common.Fields{"path": path})
		return result, common.NewUserError(fmt.Sprintf("Could not import %s", path), fmt.Errorf("%w: %w", common.ErrImportFailed, err))
	}
	return result, nil
}
