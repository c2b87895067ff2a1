package commands

import (
	"github.com/spf13/cobra"

	"hydroshare-viewer-service/internal/adapters/primary/http/dto"
	"hydroshare-viewer-service/internal/core/services"
)

// discover: one page of the composite resource table.
func discoverCmd(opts *rootOptions) *cobra.Command {
	q := services.DiscoverQuery{Draw: 1}
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List composite resources as the discover table shows them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.svcs.DataViewer.UpdateDiscoverTable(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewDiscoverTableResponse(table))
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "full text search")
	cmd.Flags().IntVar(&q.Start, "start", 0, "index of the first row")
	cmd.Flags().IntVar(&q.Length, "length", 10, "number of rows")
	return cmd
}
