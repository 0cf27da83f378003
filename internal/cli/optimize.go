package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cortesys/cutplan/internal/catalog"
	"github.com/cortesys/cutplan/internal/engine"
	"github.com/cortesys/cutplan/internal/export"
	"github.com/cortesys/cutplan/internal/importer"
	"github.com/cortesys/cutplan/internal/model"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	sheetType   string  // sheet type ID assigned to parts without one
	bandingType string  // banding type ID assigned to banded parts without one
	kerf        float64 // blade clearance override, mm
	order       string  // expansion sort: "area" or "width"
	pdfOut      string
	labelsOut   string
	dxfOut      string
	xlsxOut     string
}

// newOptimizeCmd creates the optimize command: import a cut list, pack it,
// and write the requested export files.
func newOptimizeCmd(configPath *string) *cobra.Command {
	var opts optimizeOpts

	cmd := &cobra.Command{
		Use:   "optimize [file]",
		Short: "Pack a cut list onto stock sheets",
		Long:  `Optimize reads a cut list from a CSV or XLSX file, packs the parts onto sheets of the configured materials, and prints a cost summary. Diagram, label, DXF and workbook exports are written when the matching flags are set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if opts.kerf == 0 {
				opts.kerf = cfg.Sheet.Kerf
			}
			if opts.order == "" {
				opts.order = cfg.Order
			}

			store := catalog.NewStore(cfg.DataDir)

			parts, err := importParts(logger, args[0])
			if err != nil {
				return err
			}
			logger.Info("imported cut list", "file", args[0], "parts", len(parts))

			if err := assignTypes(store, parts, &opts); err != nil {
				return err
			}

			view, err := store.CatalogView()
			if err != nil {
				return err
			}

			agg := engine.NewAggregator(view, opts.kerf)
			agg.Order = engine.ParseOrdering(opts.order)

			result, err := agg.Run(parts)
			if err != nil {
				return err
			}

			printSummary(cmd, result)
			if n := result.RejectedCount(); n > 0 {
				logger.Warn("some parts fit no sheet", "rejected", n)
			}

			return writeExports(logger, result, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sheetType, "sheet-type", "", "sheet type ID for parts without one (default: first active)")
	cmd.Flags().StringVar(&opts.bandingType, "banding-type", "", "banding type ID for banded parts without one (default: first active)")
	cmd.Flags().Float64Var(&opts.kerf, "kerf", 0, "blade kerf in mm (default from config)")
	cmd.Flags().StringVar(&opts.order, "order", "", "part ordering: area or width (default from config)")
	cmd.Flags().StringVar(&opts.pdfOut, "pdf", "", "write cutting diagrams to this PDF file")
	cmd.Flags().StringVar(&opts.labelsOut, "labels", "", "write QR part labels to this PDF file")
	cmd.Flags().StringVar(&opts.dxfOut, "dxf", "", "write the layout to this DXF file")
	cmd.Flags().StringVar(&opts.xlsxOut, "xlsx", "", "write the placement workbook to this XLSX file")

	return cmd
}

// importParts dispatches on the file extension.
func importParts(logger *charmlog.Logger, path string) ([]model.Part, error) {
	var res importer.Result
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		res = importer.ImportExcel(path)
	default:
		res = importer.ImportCSV(path)
	}

	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("import failed: %s", strings.Join(res.Errors, "; "))
	}
	if len(res.Parts) == 0 {
		return nil, fmt.Errorf("no parts found in %s", path)
	}
	return res.Parts, nil
}

// assignTypes fills in missing catalog references, defaulting to the first
// active entry or the flag-selected one.
func assignTypes(store *catalog.Store, parts []model.Part, opts *optimizeOpts) error {
	sheetID := opts.sheetType
	if sheetID == "" {
		types, err := store.ActiveSheetTypes()
		if err != nil {
			return err
		}
		if len(types) == 0 {
			return fmt.Errorf("no active sheet types in catalog")
		}
		sheetID = types[0].ID
	}

	bandingID := opts.bandingType
	if bandingID == "" {
		types, err := store.ActiveBandingTypes()
		if err != nil {
			return err
		}
		if len(types) > 0 {
			bandingID = types[0].ID
		}
	}

	for i := range parts {
		if parts[i].SheetTypeID == "" {
			parts[i].SheetTypeID = sheetID
		}
		if parts[i].BandingTypeID == "" && parts[i].HasBanding() {
			parts[i].BandingTypeID = bandingID
		}
	}
	return nil
}

// printSummary writes the human-readable result table to the command output.
func printSummary(cmd *cobra.Command, result *engine.ProjectResult) {
	out := cmd.OutOrStdout()

	for _, part := range result.Partitions {
		fmt.Fprintf(out, "%s: %d sheet(s), %d part(s), %.1f%% utilization\n",
			part.SheetType.Name, part.Costs.SheetCount, part.Costs.PlacedUnits, part.Costs.Utilization)
		for _, u := range part.Banding {
			fmt.Fprintf(out, "  banding %s: %.1f m -> %d roll(s) (%.2f)\n",
				u.BandingName, u.TotalLengthM, u.Rolls, u.Cost)
		}
		for _, p := range part.Result.Rejected {
			fmt.Fprintf(out, "  REJECTED %s %.0fx%.0f (qty %d): fits no sheet\n",
				p.Name, p.Length, p.Width, p.Quantity)
		}
	}
	fmt.Fprintf(out, "total: %d sheet(s), cost %.2f (sheets %.2f + banding %.2f)\n",
		result.TotalSheets, result.TotalCost, result.SheetCost, result.BandingCost)
}

// writeExports writes every export the flags requested.
func writeExports(logger *charmlog.Logger, result *engine.ProjectResult, opts optimizeOpts) error {
	if opts.pdfOut != "" {
		if err := export.WritePDF(opts.pdfOut, result); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		logger.Info("wrote cutting diagrams", "file", opts.pdfOut)
	}
	if opts.labelsOut != "" {
		if err := export.WriteLabels(opts.labelsOut, result); err != nil {
			return fmt.Errorf("write labels: %w", err)
		}
		logger.Info("wrote part labels", "file", opts.labelsOut)
	}
	if opts.dxfOut != "" {
		if err := export.WriteDXF(opts.dxfOut, result); err != nil {
			return fmt.Errorf("write DXF: %w", err)
		}
		logger.Info("wrote layout drawing", "file", opts.dxfOut)
	}
	if opts.xlsxOut != "" {
		if err := export.WriteXLSX(opts.xlsxOut, result); err != nil {
			return fmt.Errorf("write XLSX: %w", err)
		}
		logger.Info("wrote placement workbook", "file", opts.xlsxOut)
	}
	return nil
}
