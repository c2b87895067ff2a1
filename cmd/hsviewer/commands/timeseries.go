package commands

import (
	"github.com/spf13/cobra"

	"hydroshare-viewer-service/internal/adapters/primary/http/dto"
	"hydroshare-viewer-service/internal/core/domain"
	"hydroshare-viewer-service/internal/core/services"
)

// timeseries <layer_code> <site_code> <var_code>: values of one series.
func timeseriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeseries <layer_code> <site_code> <var_code>",
		Short: "Print the values of one site and variable",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := domain.ParseTimeSeriesLayerCode(args[0])
			if err != nil {
				return err
			}
			data, err := opts.svcs.DataViewer.GetTimeSeriesData(cmd.Context(), services.TimeSeriesQuery{
				Source:       source,
				SiteCode:     args[1],
				VariableCode: args[2],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewDataViewerTimeSeriesResponse(data, args[0]))
		},
	}
}
