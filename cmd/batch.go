package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

var (
	batchLimit  int
	batchDir    string
	batchOutDir string
	batchFormat string
)

var batchCmd = &cobra.Command{
	Use:   "batch [petition.pdf ...]",
	Short: "Extract many petitions concurrently, one report file each",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		paths := args
		if batchDir != "" {
			found, err := listDocuments(batchDir)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}

		res, err := processBatch(ctx, paths, batchOptions{
			limit:       batchLimit,
			concurrency: cfg.Batch.MaxConcurrentDocuments,
			outDir:      batchOutDir,
			format:      outputFormat(batchFormat),
		}, func(ctx context.Context, path string) (model.Report, error) {
			return extractFile(ctx, path, cfg.Decode)
		})
		if err != nil {
			return err
		}
		if res.Failed > 0 {
			return eris.Errorf("batch: %d of %d documents failed", res.Failed, res.Failed+res.Succeeded)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of documents to process (0 for all)")
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "also process every PDF and page dump in this directory")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "reports", "directory for the report files")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: json or yaml (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// listDocuments returns the PDFs and JSON page dumps directly inside dir.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".json":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

type batchOptions struct {
	limit       int
	concurrency int
	outDir      string
	format      string
}

type batchResult struct {
	Succeeded int64
	Failed    int64
}

// extractFunc is the callback signature for extracting one document.
type extractFunc func(ctx context.Context, path string) (model.Report, error)

// processBatch applies the limit, then extracts documents concurrently.
// Every document gets its own session; a failed document is logged and
// counted without stopping the others.
func processBatch(ctx context.Context, paths []string, opts batchOptions, run extractFunc) (batchResult, error) {
	var res batchResult
	if len(paths) == 0 {
		zap.L().Info("no documents to process")
		return res, nil
	}

	if opts.limit > 0 && len(paths) > opts.limit {
		paths = paths[:opts.limit]
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return res, eris.Wrapf(err, "batch: create %s", opts.outDir)
	}

	zap.L().Info("processing batch",
		zap.Int("documents", len(paths)),
		zap.Int("concurrency", opts.concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			log := zap.L().With(zap.String("file", path))

			report, err := run(gctx, path)
			if err == nil {
				err = writeReport(report, path, opts)
			}
			if err != nil {
				failed.Add(1)
				log.Error("extraction failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("extraction complete",
				zap.Int("line_items_found", report.Summary.LineItemsFound),
				zap.Int("tables_found", report.Summary.TablesFound),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, eris.Wrap(err, "batch processing")
	}

	res = batchResult{Succeeded: succeeded.Load(), Failed: failed.Load()}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", res.Succeeded),
		zap.Int64("failed", res.Failed),
	)
	return res, nil
}

// reportPath names the report file for a source document.
func reportPath(source, outDir, format string) string {
	base := filepath.Base(source)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+"."+format)
}

func writeReport(report model.Report, source string, opts batchOptions) error {
	path := reportPath(source, opts.outDir, opts.format)
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "batch: create %s", path)
	}
	if err := render(f, report, opts.format); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "batch: close %s", path)
}
