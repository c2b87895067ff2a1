// Package commands implements the hsviewer operator CLI. Each command runs
// one viewer operation against the configured upstreams and prints JSON.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hydroshare-viewer-service/internal/app"
	"hydroshare-viewer-service/internal/config"
)

type rootOptions struct {
	geoServerURL   string
	hydroServerURL string
	hydroShareURL  string
	timeout        time.Duration
	verbose        bool

	cfg  *config.Config
	svcs *app.Services
}

func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return newRootCmd(cfg).Execute()
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &rootOptions{cfg: cfg}

	root := &cobra.Command{
		Use:           "hsviewer",
		Short:         "Query HydroShare viewer upstreams from the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			opts.cfg.Upstream.GeoServerURL = config.NormalizeURL(opts.geoServerURL)
			opts.cfg.Upstream.HydroServerURL = config.NormalizeURL(opts.hydroServerURL)
			opts.cfg.Upstream.HydroShareURL = config.NormalizeURL(opts.hydroShareURL)
			opts.cfg.Upstream.Timeout = opts.timeout
			opts.svcs = app.New(opts.cfg, nil, nil)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.geoServerURL, "geoserver", cfg.Upstream.GeoServerURL, "GeoServer base URL (empty disables)")
	root.PersistentFlags().StringVar(&opts.hydroServerURL, "hydroserver", cfg.Upstream.HydroServerURL, "HydroServer base URL (empty disables)")
	root.PersistentFlags().StringVar(&opts.hydroShareURL, "hydroshare", cfg.Upstream.HydroShareURL, "HydroShare base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.Upstream.Timeout, "upstream request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log upstream requests")

	root.AddCommand(
		discoverCmd(opts),
		layersCmd(opts),
		metadataCmd(opts),
		timeseriesCmd(opts),
		catalogCmd(opts),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
