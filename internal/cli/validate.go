package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/grounddb/internal/schema"
)

// ValidationResult holds validation results for the JSON envelope.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <data-dir>",
		Short: "Validate all seven dataset files against their schemas",
		Long: `Validate a dataset directory against the embedded CUE shapes.

Checks that every domain file is present, that record files are lists
of string-valued objects, that leaveAt/arriveBy values are HH:MM clock
times, and that the taxi file carries non-empty option lists.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(rootOpts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	errs := schema.ValidateDir(dir)
	if len(errs) == 0 {
		if rootOpts.Format == "json" {
			return formatter.SuccessJSON(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "all datasets valid")
		return nil
	}

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	if rootOpts.Format == "json" {
		if err := formatter.SuccessJSON(ValidationResult{Valid: false, Errors: messages}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "%d dataset(s) failed validation\n", len(errs))
		for _, msg := range messages {
			fmt.Fprintf(formatter.Writer, "  - %s\n", msg)
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("%d dataset(s) failed validation", len(errs)), nil)
}
