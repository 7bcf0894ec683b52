package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/output"
)

type inspectFlags struct {
	outputPath    string
	pretty        bool
	mode          string
	readOnly      bool
	keepLinks     bool
	keepVBA       bool
	media         string
	sheetsDir     string
	printAreasDir string
}

func (a *app) inspectCmd() *cobra.Command {
	var f inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect <input.xlsx>",
		Short: "Print a JSON summary of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			if opts.Mode, err = models.ParseMode(f.mode); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("read-only") {
				opts.ReadOnly = f.readOnly
			}
			if flags.Changed("keep-links") {
				keep := f.keepLinks
				opts.KeepLinks = &keep
			}
			if flags.Changed("keep-vba") {
				opts.KeepVBA = f.keepVBA
			}
			if flags.Changed("media") {
				if opts.UnsupportedMedia, err = drawing.ParseMediaPolicy(f.media); err != nil {
					return err
				}
			}
			return runInspect(cmd, args[0], opts, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	fl.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	fl.StringVar(&f.mode, "mode", "standard", "Summary mode: light, standard, verbose")
	fl.BoolVar(&f.readOnly, "read-only", false, "Stream rows from the open archive instead of loading them")
	fl.BoolVar(&f.keepLinks, "keep-links", true, "Read external link parts")
	fl.BoolVar(&f.keepVBA, "keep-vba", false, "Keep the VBA project of macro-enabled files")
	fl.StringVar(&f.media, "media", "warn", "Unsupported media policy: skip, warn")
	fl.StringVar(&f.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	fl.StringVar(&f.printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts xlpkg.Options, f inspectFlags) error {
	wb, err := xlpkg.LoadWorkbook(path, opts)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	defer wb.Close()

	summary, err := wb.Summary()
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}
	jsonData, err := output.ToJSON(summary, f.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, jsonData, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if f.sheetsDir == "" && f.printAreasDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if f.sheetsDir != "" {
		if err := writeSheetFiles(summary, f.sheetsDir, f.pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	if f.printAreasDir != "" {
		if err := writePrintAreaFiles(summary, f.printAreasDir, f.pretty); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name+".json"), jsonData, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writePrintAreaFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		for i, area := range sheet.PrintAreas {
			view := output.NewPrintAreaView(wb.BookName, name, sheet, area)
			jsonData, err := output.PrintAreaViewToJSON(&view, pretty)
			if err != nil {
				return err
			}
			filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", name, i+1))
			if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
