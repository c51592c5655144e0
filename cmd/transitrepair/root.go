package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transitrepair/engine/internal/config"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "transitrepair",
	Short: "Repair and upgrade public transport route relations",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("overpass-endpoint", "", "Overpass API interpreter URL (overrides OVERPASS_API_INTERPRETER)")
	flags.String("osm-client", "", "OSM OAuth client id (overrides OSM_CLIENT)")
	flags.String("osm-secret", "", "OSM OAuth client secret (overrides OSM_SECRET)")
	flags.Int("cpu-count", 0, "search worker count per request (overrides CALC_ROUTE_N_PROCESSES)")
	flags.Float64("grid-step-deg", 0, "download grid cell size, in degrees (overrides DOWNLOAD_RELATION_GRID_SIZE)")
	flags.Float64("way-bb-expand-m", 0, "way bounding-box expansion, in meters (overrides DOWNLOAD_RELATION_WAY_BB_EXPAND)")
	flags.Float64("stop-search-m", 0, "bus stop collection search radius, in meters (overrides BUS_COLLECTION_SEARCH_AREA)")
	flags.Float64("cell-expand-deg", 0, "download grid cell expansion, in degrees (overrides DOWNLOAD_RELATION_GRID_CELL_EXPAND)")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, repairCmd)
}

// loadConfig reads Config from the environment (internal/config.Load), then
// applies any flag/viper override a caller explicitly set — the same
// env-var names config.py binds, plus the CLI conveniences described in
// SPEC_FULL.md's CLI section.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if s := v.GetString("overpass-endpoint"); s != "" {
		cfg.OverpassAPIInterpreter = s
	}
	if s := v.GetString("osm-client"); s != "" {
		cfg.OSMClient = s
	}
	if s := v.GetString("osm-secret"); s != "" {
		cfg.OSMSecret = s
	}
	if n := v.GetInt("cpu-count"); n > 0 {
		cfg.CalcRouteNProcesses = n
	}
	if f := v.GetFloat64("grid-step-deg"); f > 0 {
		cfg.DownloadRelationGridSizeDeg = f
	}
	if f := v.GetFloat64("way-bb-expand-m"); f > 0 {
		cfg.DownloadRelationWayBBExpandM = f
	}
	if f := v.GetFloat64("stop-search-m"); f > 0 {
		cfg.BusCollectionSearchAreaM = f
	}
	if f := v.GetFloat64("cell-expand-deg"); f > 0 {
		cfg.DownloadRelationGridCellExpandDeg = f
	}

	return cfg, nil
}
