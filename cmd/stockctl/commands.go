package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/internal/usecase"
)

type importOptions struct {
	file    string
	mode    string
	user    string
	preview bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import products from an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseImportMode(opts.mode)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(opts.file)
			if err != nil {
				return fmt.Errorf("read %s: %w", opts.file, err)
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if opts.preview {
				preview, err := e.sheets.Preview(cmd.Context(), data)
				if err != nil {
					return err
				}
				printPreview(cmd.OutOrStdout(), preview)
				return nil
			}

			report, err := e.sheets.Import(cmd.Context(), opts.user, data, mode)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Workbook to import (required)")
	cmd.Flags().StringVar(&opts.mode, "mode", "update", "Import mode: update, add or replace")
	cmd.Flags().StringVar(&opts.user, "user", "stockctl", "Name recorded in the activity log")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Summarize the file without applying it")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newExportCmd() *cobra.Command {
	var out, user string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			filename, data, err := e.sheets.Export(cmd.Context(), user)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default: dated filename)")
	cmd.Flags().StringVar(&user, "user", "stockctl", "Name recorded in the activity log")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the import template workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			data, err := e.sheets.Template()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", usecase.TemplateFilename, "Output path")
	return cmd
}

func printReport(w io.Writer, r *domain.ImportReport) {
	fmt.Fprintf(w, "Import Results (%s mode)\n", r.Mode)
	fmt.Fprintf(w, "  Total processed: %d\n", r.Total)
	fmt.Fprintf(w, "  Added:           %d\n", r.Added)
	fmt.Fprintf(w, "  Updated:         %d\n", r.Updated)
	fmt.Fprintf(w, "  Warnings:        %d\n", r.Warnings)
	fmt.Fprintf(w, "  Errors:          %d\n", r.Errors)
	if r.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped rows:    %d\n", r.Skipped)
	}
	for _, d := range r.Details {
		fmt.Fprintf(w, "  row %-4d %-12s %-8s %s\n", d.Row, d.SKU, d.Status, d.Message)
	}
	if r.Remaining > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", r.Remaining)
	}
}

func printPreview(w io.Writer, p *domain.ImportPreview) {
	fmt.Fprintf(w, "Rows: %d (%d existing, %d new)\n", p.Candidates, p.Existing, p.New)
	for _, row := range p.Rows {
		fmt.Fprintf(w, "  %v\n", row)
	}
}
