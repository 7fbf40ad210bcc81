// Package commands holds the CLI subcommands added to the PocketBase root
// command.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotelorders/services"
)

// GeneratorFunc builds the report generator once the app is bootstrapped.
type GeneratorFunc func(ctx context.Context) (*services.Generator, error)

// NewReportCommand returns `report --date YYYY-MM-DD --out DIR`, which
// writes every document of one day into DIR.
func NewReportCommand(build GeneratorFunc) *cobra.Command {
	var (
		date string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the order reports of one day to disk",
		Long: `Builds the combined report, the hotel reports and the workbook for one
day and writes them into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := services.ParseReportDate(date)
			if err != nil {
				return err
			}
			gen, err := build(cmd.Context())
			if err != nil {
				return fmt.Errorf("set up report: %w", err)
			}
			return runReport(cmd, gen, day, out)
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(time.DateOnly), "report date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	return cmd
}

func runReport(cmd *cobra.Command, gen *services.Generator, day time.Time, out string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := gen.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rep, err := gen.Build(ctx, day)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	if rep.Warning != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: no orders for %s\n", services.DisplayDate(day))
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	docs, renderErr := gen.RenderAll(rep)
	var errs []error
	for _, kind := range []services.DocumentKind{services.DocCombinedPDF, services.DocHotelsPDF, services.DocCombinedExcel} {
		data, ok := docs[kind]
		if !ok {
			continue
		}
		path := filepath.Join(out, services.FileName(kind, day))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
			continue
		}
		logger.Info("report written", zap.String("path", path), zap.Int("bytes", len(data)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return errors.Join(append(errs, renderErr)...)
}
