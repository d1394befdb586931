package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madhavanxk/kserc-analysis-tool/internal/config"
	"github.com/madhavanxk/kserc-analysis-tool/internal/extract"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
)

var (
	extractFormat string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract <petition.pdf>",
	Short: "Extract every line item and supporting table from one petition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		report, err := extractFile(ctx, args[0], cfg.Decode)
		if err != nil {
			return err
		}

		zap.L().Info("extraction complete",
			zap.String("file", args[0]),
			zap.Int("line_items_found", report.Summary.LineItemsFound),
			zap.Int("tables_found", report.Summary.TablesFound),
		)

		var w io.Writer = cmd.OutOrStdout()
		if extractOutput != "" {
			f, err := os.Create(extractOutput)
			if err != nil {
				return eris.Wrapf(err, "extract: create %s", extractOutput)
			}
			defer f.Close() //nolint:errcheck
			w = f
		}
		return render(w, report, outputFormat(extractFormat))
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "output format: json or yaml (default from config)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(extractCmd)
}

// extractFile opens one document, extracts it and releases it.
func extractFile(ctx context.Context, path string, c config.DecodeConfig) (model.Report, error) {
	s, err := openDocument(ctx, path, c)
	if err != nil {
		return model.Report{}, err
	}
	defer s.Close() //nolint:errcheck

	return extract.Run(s)
}
