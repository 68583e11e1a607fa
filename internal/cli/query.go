package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/grounddb/internal/domain"
	"github.com/roach88/grounddb/internal/engine"
	"github.com/roach88/grounddb/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	DataDir    string
	StrictOpen bool  // match destination/departure exactly
	Strict     bool  // reject unresolved slots and comparison faults
	Seed       int64 // pin taxi randomness; 0 = process-wide source
}

// QueryResult is the data payload of a query command.
type QueryResult struct {
	Domain  string          `json:"domain"`
	Count   int             `json:"count"`
	Matches []domain.Record `json:"matches"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <domain> [slot=value ...]",
		Short: "Run a belief-state query against a dataset directory",
		Long: `Run a constraint query against one domain's dataset.

Constraints are slot=value pairs evaluated as a conjunction. Values
equal to a don't-care token ("dontcare", "not mentioned", ...) never
exclude a record. Taxi queries synthesize one random record; police and
hospital return their whole collections.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataDir, "data", "", "dataset directory (required)")
	cmd.Flags().BoolVar(&opts.StrictOpen, "strict-open", false, "match destination/departure exactly instead of ignoring them")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on unresolved slots and comparison faults instead of passing them through")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed for taxi randomness (0 uses the process-wide source)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runQuery(rootOpts *RootOptions, opts *QueryOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	d, err := domain.Parse(args[0])
	if err != nil {
		formatter.Error("E_DOMAIN", err.Error(), nil)
		return NewExitError(ExitCommandError, "unknown domain", err)
	}

	constraints, err := parseConstraints(args[1:])
	if err != nil {
		formatter.Error("E_CONSTRAINT", err.Error(), nil)
		return NewExitError(ExitCommandError, "bad constraint", err)
	}

	s, err := store.Load(opts.DataDir)
	if err != nil {
		formatter.Error("E_LOAD", err.Error(), nil)
		return NewExitError(ExitCommandError, "load datasets", err)
	}
	formatter.VerboseLog("loaded datasets from %s", opts.DataDir)

	engOpts := []engine.Option{
		engine.WithStrictFields(opts.Strict),
		engine.WithStrictValues(opts.Strict),
	}
	if opts.Seed != 0 {
		engOpts = append(engOpts, engine.WithRand(rand.New(rand.NewSource(opts.Seed))))
	}
	eng := engine.New(s, engOpts...)

	matches, err := eng.Query(d, constraints, engine.MatchOpenFields(!opts.StrictOpen))
	if err != nil {
		formatter.Error("E_QUERY", err.Error(), nil)
		return NewExitError(ExitFailure, "query failed", err)
	}

	result := QueryResult{Domain: d.String(), Count: len(matches), Matches: matches}
	if rootOpts.Format == "json" {
		return formatter.SuccessJSON(result)
	}
	return printQueryText(formatter, result)
}

// parseConstraints converts slot=value arguments into constraints,
// preserving argument order (evaluation order is caller order).
func parseConstraints(args []string) ([]domain.Constraint, error) {
	constraints := make([]domain.Constraint, 0, len(args))
	for _, arg := range args {
		slot, value, ok := strings.Cut(arg, "=")
		if !ok || slot == "" {
			return nil, fmt.Errorf("constraint %q is not slot=value", arg)
		}
		constraints = append(constraints, domain.Constraint{Slot: slot, Value: value})
	}
	return constraints, nil
}

func printQueryText(formatter *OutputFormatter, result QueryResult) error {
	fmt.Fprintf(formatter.Writer, "%d match(es) in %s\n", result.Count, result.Domain)
	for i, rec := range result.Matches {
		fmt.Fprintf(formatter.Writer, "--- %d\n", i+1)
		// Stable field order for scannable output.
		fields := make([]string, 0, len(rec))
		for name := range rec {
			fields = append(fields, name)
		}
		sort.Strings(fields)
		for _, name := range fields {
			value := rec[name]
			if s, ok := value.(string); ok {
				fmt.Fprintf(formatter.Writer, "  %s: %s\n", name, s)
				continue
			}
			raw, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", name, raw)
		}
	}
	return nil
}
