// Command optimizer picks the assets that maximize expected return within a
// capital budget, trims them to a risk tolerance and prints the result.
//
//	optimizer --capital 100000 --risk 60 --csv assets.csv [--plot] [--export result.json]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aristath/allocator/internal/domain"
	"github.com/aristath/allocator/internal/modules/charts"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/reporting"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/aristath/allocator/pkg/logger"
)

type options struct {
	capital     int
	risk        int
	input       string
	plot        bool
	plotOut     string
	export      string
	frontierCSV string
	explain     bool
	logLevel    string
	maxCells    int64
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log := logger.New(logger.Config{Level: opts.logLevel, Pretty: true, Output: stderr})

	assets, err := universe.LoadFile(opts.input)
	if err != nil {
		log.Error().Err(err).Str("file", opts.input).Msg("Failed to load assets")
		return 1
	}
	log.Debug().Int("assets", len(assets)).Msg("Assets loaded")

	optimizer := optimization.NewOptimizer(optimization.NewKnapsackSolver(opts.maxCells, log), log)

	outcome, err := optimizer.RunDetailed(assets, opts.capital, opts.risk)
	if err != nil {
		log.Error().Err(err).Msg("Optimization failed")
		return 1
	}

	if err := reporting.WriteSelection(stdout, outcome.Selected); err != nil {
		log.Error().Err(err).Msg("Failed to write report")
		return 1
	}
	if opts.explain {
		if err := reporting.WriteRemoved(stdout, outcome.Removed); err != nil {
			log.Error().Err(err).Msg("Failed to write report")
			return 1
		}
	}

	var frontier []domain.FrontierPoint
	if opts.plot || opts.export != "" || opts.frontierCSV != "" {
		sweeper := optimization.NewFrontierSweeper(optimizer, 4, log)
		frontier, err = sweeper.Sweep(context.Background(), assets, opts.capital)
		if err != nil {
			log.Error().Err(err).Msg("Frontier sweep failed")
			return 1
		}
	}

	if opts.plot {
		svg := charts.RenderFrontierSVG(frontier, charts.Options{})
		if err := os.WriteFile(opts.plotOut, svg, 0o644); err != nil {
			log.Error().Err(err).Msg("Failed to write frontier plot")
			return 1
		}
		fmt.Fprintf(stdout, "Frontier plot saved to %s\n", opts.plotOut)
	}

	if opts.frontierCSV != "" {
		if err := writeFile(opts.frontierCSV, func(w io.Writer) error {
			return reporting.WriteFrontierCSV(w, frontier)
		}); err != nil {
			log.Error().Err(err).Msg("Failed to write frontier CSV")
			return 1
		}
	}

	if opts.export != "" {
		format, err := reporting.FormatFromPath(opts.export)
		if err != nil {
			log.Error().Err(err).Msg("Failed to export result")
			return 1
		}
		doc := reporting.Export{
			Capital:       opts.capital,
			RiskTolerance: opts.risk,
			Selected:      nonNil(outcome.Selected),
			Removed:       nonNil(outcome.Removed),
			TotalCost:     outcome.Selected.TotalCost(),
			TotalReturn:   outcome.Selected.TotalReturn(),
			TotalRisk:     outcome.Selected.TotalRisk(),
			Frontier:      frontier,
		}
		if err := writeFile(opts.export, func(w io.Writer) error {
			return reporting.Encode(w, format, doc)
		}); err != nil {
			log.Error().Err(err).Msg("Failed to export result")
			return 1
		}
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("optimizer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.capital, "capital", -1, "total investment budget (required)")
	fs.IntVar(&opts.risk, "risk", -1, "maximum total risk score, 0-100 (required)")
	fs.StringVar(&opts.input, "csv", "", "asset file, CSV or YAML (required)")
	fs.BoolVar(&opts.plot, "plot", false, "write the efficient frontier as SVG")
	fs.StringVar(&opts.plotOut, "plot-out", "frontier.svg", "path of the frontier plot")
	fs.StringVar(&opts.export, "export", "", "write the result to a .json or .msgpack file")
	fs.StringVar(&opts.frontierCSV, "frontier-csv", "", "write the frontier points to a CSV file")
	fs.BoolVar(&opts.explain, "explain", false, "also list the assets dropped by the risk filter")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.Int64Var(&opts.maxCells, "max-table-cells", optimization.DefaultMaxTableCells, "largest DP table accepted")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.capital < 0:
		return opts, errors.New("--capital is required and must not be negative")
	case opts.risk < 0:
		return opts, errors.New("--risk is required and must not be negative")
	case opts.input == "":
		return opts, errors.New("--csv is required")
	}
	return opts, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func nonNil(sel domain.Selection) domain.Selection {
	if sel == nil {
		return domain.Selection{}
	}
	return sel
}
