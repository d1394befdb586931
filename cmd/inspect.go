package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/madhavanxk/kserc-analysis-tool/internal/boundary"
	"github.com/madhavanxk/kserc-analysis-tool/internal/config"
	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/extract"
	"github.com/madhavanxk/kserc-analysis-tool/internal/narrative"
)

var inspectFormat string

var boundariesCmd = &cobra.Command{
	Use:   "boundaries <petition.pdf>",
	Short: "Print the SBU chapter page ranges of a petition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, args[0], func(s *document.Session) error {
			bounds := boundary.ForSession(s)
			if err := s.Err(); err != nil {
				return eris.Wrapf(err, "boundaries: %s", s.Source())
			}
			return render(cmd.OutOrStdout(), bounds, outputFormat(inspectFormat))
		})
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables <petition.pdf>",
	Short: "Extract only the Chapter 5 supporting tables of a petition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, args[0], func(s *document.Session) error {
			tables, err := extract.Tables(s)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), tables, outputFormat(inspectFormat))
		})
	},
}

var sectionFrom int

var sectionCmd = &cobra.Command{
	Use:   "section <petition.pdf> <number>",
	Short: "Print a numbered narrative section such as 3.2",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(cmd, args[0], func(s *document.Session) error {
			title, text := narrative.SectionText(s, args[1], sectionFrom)
			if err := s.Err(); err != nil {
				return eris.Wrapf(err, "section: %s", s.Source())
			}
			if text == "" {
				return eris.Errorf("section: %s not found in %s", args[1], s.Source())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n%s", args[1], title, text)
			return err
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{boundariesCmd, tablesCmd} {
		c.Flags().StringVar(&inspectFormat, "format", "", "output format: json or yaml (default from config)")
	}
	sectionCmd.Flags().IntVar(&sectionFrom, "from", 0, "0-based page to start searching from")
	rootCmd.AddCommand(boundariesCmd, tablesCmd, sectionCmd)
}

// withDocument opens path for the duration of fn.
func withDocument(cmd *cobra.Command, path string, fn func(*document.Session) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return openAndRun(ctx, path, cfg.Decode, fn)
}

func openAndRun(ctx context.Context, path string, c config.DecodeConfig, fn func(*document.Session) error) error {
	s, err := openDocument(ctx, path, c)
	if err != nil {
		return err
	}
	defer s.Close() //nolint:errcheck
	return fn(s)
}

