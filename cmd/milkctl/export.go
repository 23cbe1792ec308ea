package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/export"
)

var (
	exportMonth int
	exportYear  int
	exportDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export standalone HTML snapshots",
	Long: `Generates self-contained HTML documents: the whole month matrix with a
sticky header and first column, or the unpaid-customers report. Files are
written locally and uploaded nowhere.`,
}

var exportOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Export the month matrix as HTML",
	RunE:  runExportOverview,
}

var exportUnpaidCmd = &cobra.Command{
	Use:   "unpaid",
	Short: "Export the unpaid report as HTML",
	RunE:  runExportUnpaid,
}

func init() {
	now := time.Now()
	exportCmd.PersistentFlags().IntVar(&exportMonth, "month", int(now.Month()), "month 1-12")
	exportCmd.PersistentFlags().IntVar(&exportYear, "year", now.Year(), "year")
	exportCmd.PersistentFlags().StringVar(&exportDir, "out", ".", "output directory")

	exportCmd.AddCommand(exportOverviewCmd, exportUnpaidCmd)
	rootCmd.AddCommand(exportCmd)
}

func writeArtifact(name string, render func(f *os.File) error) error {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(exportDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	fmt.Printf("✓ Wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	return nil
}

func runExportOverview(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ov, err := a.client.GetOverview(cmd.Context(), a.shift, exportMonth, exportYear)
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	name := export.OverviewFilename(a.shift, exportYear, exportMonth)
	return writeArtifact(name, func(f *os.File) error {
		return export.WriteOverview(f, ov, a.shift, time.Now())
	})
}

func runExportUnpaid(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	rows, err := a.client.UnpaidRows(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing unpaid rows: %w", err)
	}

	now := time.Now()
	name := export.UnpaidFilename(a.shift, now)
	return writeArtifact(name, func(f *os.File) error {
		return export.WriteUnpaid(f, rows, a.shift, now)
	})
}
