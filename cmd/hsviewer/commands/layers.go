package commands

import (
	"github.com/spf13/cobra"
)

func layersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layers <resource_id>",
		Short: "List the map layers of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := opts.svcs.DataViewer.GetLayers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), layers)
		},
	}
}

func metadataCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <resource_id>",
		Short: "Show a resource's metadata and layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := opts.svcs.DataViewer.GetResourceMetadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), meta)
		},
	}
}

// catalog: every layer the GIS viewer can add from discovery.
func catalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List discoverable vector, raster and time series layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := opts.svcs.GISViewer.GetDiscoveryLayerList(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), layers)
		},
	}
}
