package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/service/importer"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

type inspectOptions struct {
	sheet   bool
	mapping []string
	preview bool
	asJSON  bool
	maxSize int64
}

func newInspectCmd(newLogger func(*cobra.Command) logger.Logger) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect FILE|URL",
		Short: "Run a contact file through column mapping and report the result",
		Long: `Inspect ingests a CSV, TSV or Excel file (or a Google Sheets share link
with --sheet), applies automatic column matching plus any --map overrides and
prints the mapping, the number of usable records and the warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd).WithField("input", args[0])
			return runInspect(cmd.Context(), cmd.OutOrStdout(), log, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.sheet, "sheet", false, "Treat the argument as a Google Sheets share URL")
	cmd.Flags().StringArrayVar(&opts.mapping, "map", nil, "Override a mapping as field=column, an empty column unmaps (repeatable)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Advance to preview and list the preview records")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the import snapshot as JSON")
	cmd.Flags().Int64Var(&opts.maxSize, "max-size", domain.DefaultMaxUploadBytes, "Largest accepted file in bytes")
	return cmd
}

func runInspect(ctx context.Context, out io.Writer, log logger.Logger, input string, opts inspectOptions) error {
	cfg := importer.DefaultConfig()
	cfg.MaxUploadBytes = opts.maxSize

	pipeline := importer.NewPipeline(
		importer.WithConfig(cfg),
		importer.WithSheetFetcher(importer.NewHTTPSheetFetcher(&http.Client{Timeout: cfg.SheetFetchTimeout}, cfg.MaxUploadBytes)),
	)

	if opts.sheet {
		if err := pipeline.ChooseSource(domain.ImportSourceSheet); err != nil {
			return err
		}
		if err := pipeline.FetchSheet(ctx, input); err != nil {
			return err
		}
	} else {
		if err := ingestFile(ctx, pipeline, input); err != nil {
			return err
		}
	}
	log.Debug("Ingested contacts")

	if err := applyMapping(pipeline, opts.mapping); err != nil {
		return err
	}

	if opts.preview {
		if err := pipeline.ToPreview(); err != nil {
			return err
		}
	}

	snap := pipeline.Snapshot()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return printSnapshot(out, snap)
}

func ingestFile(ctx context.Context, pipeline *importer.Pipeline, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open contacts file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat contacts file: %w", err)
	}
	if err := pipeline.ChooseSource(domain.ImportSourceFile); err != nil {
		return err
	}
	return pipeline.IngestFile(ctx, info.Size(), f)
}

// applyMapping applies --map overrides on top of the automatic column matches
func applyMapping(pipeline *importer.Pipeline, pairs []string) error {
	overrides, err := parseAssignments(pairs)
	if err != nil {
		return err
	}
	for field, column := range overrides {
		if err := pipeline.MapColumn(domain.ContactField(field), column); err != nil {
			return fmt.Errorf("--map %s: %w", field, err)
		}
	}
	return nil
}

// loadContacts runs a local file through ingestion and mapping and returns
// the usable records
func loadContacts(ctx context.Context, path string, pairs []string) ([]domain.ContactRecord, error) {
	pipeline := importer.NewPipeline()
	if err := ingestFile(ctx, pipeline, path); err != nil {
		return nil, err
	}
	if err := applyMapping(pipeline, pairs); err != nil {
		return nil, err
	}
	// ToPreview enforces the mapping exit condition: email mapped, one record at least
	if err := pipeline.ToPreview(); err != nil {
		return nil, err
	}
	return pipeline.Records()
}

func printSnapshot(out io.Writer, snap domain.ImportSnapshot) error {
	fmt.Fprintf(out, "Step:    %s\n", snap.Step)
	fmt.Fprintf(out, "Columns: %s\n", strings.Join(snap.Headers, ", "))
	fmt.Fprintf(out, "Records: %d\n\n", snap.RecordCount)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tCOLUMN\tREQUIRED")
	for _, target := range snap.TargetFields {
		column, ok := snap.Mapping.Column(target.Field)
		if !ok {
			column = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\n", target.Field, column, target.Required)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, w := range snap.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w.Message())
	}

	if snap.Preview != nil {
		fmt.Fprintln(out)
		for i, r := range snap.Preview.Records {
			marker := " "
			if i == snap.Preview.Index {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %d  %s <%s>\n", marker, i, r.FirstName, r.Email)
		}
		fmt.Fprintf(out, "\nPreview query: %s\n", snap.Preview.Query)
	}
	return nil
}
