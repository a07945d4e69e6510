// Package main provides the CLI entry point for figstruct-go.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawxnsingh/figstruct-go/pkg/artifact"
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct"
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/models"
	"github.com/pawxnsingh/figstruct-go/pkg/figstruct/output"
)

var (
	outputPath   string
	pretty       bool
	format       string
	merge        bool
	coerceDates  bool
	yPrefix      string
	xColumn      string
	fromResponse bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figstruct [input]",
		Short: "Extract tabular data from chart figure specifications",
		Long: `figstruct-go normalizes heterogeneous figure specifications (scatter, bar,
heatmap, pie, ohlc, waterfall, choropleth, box, and more) into canonical
tables and writes them as JSON, CSV, or XLSX.

The input is a figure JSON file, or with --from-response a raw chat
response whose tagged chart artifacts are extracted first.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, xlsx")
	rootCmd.Flags().BoolVar(&merge, "merge", false, "Merge cartesian tables into one wide table keyed by x")
	rootCmd.Flags().BoolVar(&coerceDates, "coerce-dates", false, "Reinterpret x-column values as timestamps")
	rootCmd.Flags().StringVar(&yPrefix, "y-prefix", "y", "Prefix for generated value-column names")
	rootCmd.Flags().StringVar(&xColumn, "x-column", "", "Override the x column name")
	rootCmd.Flags().BoolVar(&fromResponse, "from-response", false, "Treat the input as chat response text with tagged chart artifacts")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped traces and diagnostics")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	figures, err := loadFigures(data, logger)
	if err != nil {
		return err
	}

	opts := figstruct.Options{
		MergeCartesian: merge,
		CoerceDates:    coerceDates,
		UnnamedYPrefix: yPrefix,
		XColumnName:    xColumn,
		OnTraceError: func(err error) {
			logger.Warn("trace skipped", zap.Error(err))
		},
	}

	var tables []models.Table
	for _, fig := range figures {
		tables = append(tables, figstruct.ExtractTables(fig, opts)...)
	}
	logger.Info("extraction complete",
		zap.Int("figures", len(figures)),
		zap.Int("tables", len(tables)),
	)

	switch strings.ToLower(format) {
	case "json":
		return writeJSON(tables)
	case "csv":
		return writeCSV(tables)
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("xlsx format requires --output")
		}
		return output.WriteXLSX(outputPath, tables)
	default:
		return fmt.Errorf("invalid format: %s (must be json, csv, or xlsx)", format)
	}
}

// loadFigures decodes the input into one or more figures.
func loadFigures(data []byte, logger *zap.Logger) ([]*models.Figure, error) {
	if fromResponse {
		var figures []*models.Figure
		for _, seg := range artifact.Parse(string(data)) {
			if seg.Kind != artifact.KindChart {
				continue
			}
			if seg.Figure == nil {
				logger.Warn("chart artifact references a remote figure, skipping", zap.String("ref", seg.Ref))
				continue
			}
			figures = append(figures, seg.Figure)
		}
		if len(figures) == 0 {
			return nil, fmt.Errorf("no inline chart artifacts found in response")
		}
		return figures, nil
	}

	var fig models.Figure
	if err := json.Unmarshal(data, &fig); err != nil {
		return nil, fmt.Errorf("parse figure: %w", err)
	}
	return []*models.Figure{&fig}, nil
}

func writeJSON(tables []models.Table) error {
	jsonData, err := output.ToJSON(tables, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, jsonData, 0644)
	}
	fmt.Println(string(jsonData))
	return nil
}

func writeCSV(tables []models.Table) error {
	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := output.WriteCSV(w, t); err != nil {
			return err
		}
	}
	return nil
}
