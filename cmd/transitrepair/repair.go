package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/overpass"
)

var (
	repairRelationID int64
	repairStartWay   int64
	repairEndWay     int64
	repairMode       string
	repairRoundtrip  bool
	repairOutPath    string
	repairGeoJSONOut string
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Run one relation through the repair pipeline and print the osmChange",
	RunE:  runRepair,
}

func init() {
	flags := repairCmd.Flags()
	flags.Int64Var(&repairRelationID, "relation", 0, "relation id to repair (required)")
	flags.Int64Var(&repairStartWay, "start-way", 0, "starting way id (required)")
	flags.Int64Var(&repairEndWay, "end-way", 0, "ending way id (required)")
	flags.StringVar(&repairMode, "mode", "bus", "network mode: bus or tram")
	flags.BoolVar(&repairRoundtrip, "roundtrip", false, "require the route to return to its starting point")
	flags.StringVar(&repairOutPath, "out", "", "write the osmChange document here instead of stdout")
	flags.StringVar(&repairGeoJSONOut, "geojson-out", "", "also write the route as a GeoJSON FeatureCollection here")

	for _, name := range []string{"relation", "start-way", "end-way"} {
		if err := repairCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func runRepair(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := overpass.NewClient(cfg.OverpassAPIInterpreter, "transitrepair")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := runPipeline(ctx, cfg, client, nil, repairRequest{
		RelationID: domain.NativeID(repairRelationID),
		StartWay:   domain.NativeID(repairStartWay),
		EndWay:     domain.NativeID(repairEndWay),
		Mode:       repairMode,
		Roundtrip:  repairRoundtrip,
	})
	if err != nil {
		return fmt.Errorf("repair relation %d: %w", repairRelationID, err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
	}

	if repairGeoJSONOut != "" {
		geoJSON, err := result.RouteGeoJSON.MarshalJSON()
		if err != nil {
			return fmt.Errorf("marshal route geojson: %w", err)
		}
		if err := os.WriteFile(repairGeoJSONOut, geoJSON, 0o644); err != nil {
			return err
		}
	}

	if repairOutPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.ChangeXML)
		return nil
	}

	return os.WriteFile(repairOutPath, []byte(result.ChangeXML), 0o644)
}
