package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/grounddb/internal/domain"
	"github.com/roach88/grounddb/internal/store"
)

// DomainInfo is one row of the domains listing.
type DomainInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewDomainsCommand creates the domains command.
func NewDomainsCommand(rootOpts *RootOptions) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:           "domains",
		Short:         "List the closed domain set and per-domain record counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDomains(rootOpts, dataDir, cmd)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "dataset directory (required)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runDomains(rootOpts *RootOptions, dataDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	s, err := store.Load(dataDir)
	if err != nil {
		formatter.Error("E_LOAD", err.Error(), nil)
		return NewExitError(ExitCommandError, "load datasets", err)
	}

	infos := make([]DomainInfo, 0, len(domain.All()))
	for _, d := range domain.All() {
		infos = append(infos, DomainInfo{Name: d.String(), Count: s.Count(d)})
	}

	if rootOpts.Format == "json" {
		return formatter.SuccessJSON(infos)
	}

	for _, info := range infos {
		fmt.Fprintf(formatter.Writer, "%-12s %d\n", info.Name, info.Count)
	}
	return nil
}
