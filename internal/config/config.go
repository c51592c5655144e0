package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/transitrepair/engine/internal/errs"
)

// Config is transitrepair's full runtime configuration.
type Config struct {
	// Secret signs session cookies/tokens; required, no default.
	Secret string `validate:"required"`

	// Website is the public URL shown in generated changeset metadata.
	Website string `validate:"required,url"`

	OverpassAPIInterpreter string `validate:"required,url"`
	OSMAPIBaseURL          string `validate:"required,url"`

	OSMClient string
	OSMSecret string
	OSMScopes string `validate:"required"`

	TagMaxLength int `validate:"gt=0"`

	CalcRouteMaxRequests int `validate:"gt=0"`
	CalcRouteNProcesses  int `validate:"gt=0"`

	DownloadRelationWayBBExpandM      float64 `validate:"gt=0"`
	DownloadRelationGridSizeDeg       float64 `validate:"gt=0"`
	DownloadRelationGridCellExpandDeg float64 `validate:"gt=0"`

	BusCollectionSearchAreaM float64 `validate:"gt=0"`

	SentryDSN string
}

// CalcRouteMaxProcesses is the hard ceiling on concurrent search workers
// across all in-flight repair requests.
func (c Config) CalcRouteMaxProcesses() int {
	return c.CalcRouteNProcesses * c.CalcRouteMaxRequests
}

func defaults() Config {
	return Config{
		Website:                           "https://github.com/transitrepair/engine",
		OverpassAPIInterpreter:            "https://overpass.monicz.dev/api/interpreter",
		OSMAPIBaseURL:                     "https://api.openstreetmap.org",
		OSMScopes:                         "read_prefs write_api",
		TagMaxLength:                      255,
		CalcRouteMaxRequests:              3,
		CalcRouteNProcesses:               1,
		DownloadRelationWayBBExpandM:      250,
		DownloadRelationGridSizeDeg:       0.01,
		DownloadRelationGridCellExpandDeg: 0.001,
		BusCollectionSearchAreaM:          50,
	}
}

// Load reads Config from the environment, applying defaults() for any
// variable left unset, then validates the result.
func Load() (Config, error) {
	cfg := defaults()

	cfg.Secret = os.Getenv("SECRET")
	cfg.OSMClient = os.Getenv("OSM_CLIENT")
	cfg.OSMSecret = os.Getenv("OSM_SECRET")
	cfg.SentryDSN = os.Getenv("SENTRY_DSN")

	if v, ok := os.LookupEnv("WEBSITE"); ok {
		cfg.Website = v
	}
	if v, ok := os.LookupEnv("OVERPASS_API_INTERPRETER"); ok {
		cfg.OverpassAPIInterpreter = v
	}
	if v, ok := os.LookupEnv("OSM_API_BASE_URL"); ok {
		cfg.OSMAPIBaseURL = v
	}

	var err error
	if cfg.TagMaxLength, err = overrideInt("TAG_MAX_LENGTH", cfg.TagMaxLength); err != nil {
		return Config{}, err
	}
	if cfg.CalcRouteMaxRequests, err = overrideInt("CALC_ROUTE_MAX_REQUESTS", cfg.CalcRouteMaxRequests); err != nil {
		return Config{}, err
	}
	if cfg.CalcRouteNProcesses, err = overrideInt("CALC_ROUTE_N_PROCESSES", cfg.CalcRouteNProcesses); err != nil {
		return Config{}, err
	}
	if cfg.DownloadRelationWayBBExpandM, err = overrideFloat("DOWNLOAD_RELATION_WAY_BB_EXPAND", cfg.DownloadRelationWayBBExpandM); err != nil {
		return Config{}, err
	}
	if cfg.DownloadRelationGridSizeDeg, err = overrideFloat("DOWNLOAD_RELATION_GRID_SIZE", cfg.DownloadRelationGridSizeDeg); err != nil {
		return Config{}, err
	}
	if cfg.DownloadRelationGridCellExpandDeg, err = overrideFloat("DOWNLOAD_RELATION_GRID_CELL_EXPAND", cfg.DownloadRelationGridCellExpandDeg); err != nil {
		return Config{}, err
	}
	if cfg.BusCollectionSearchAreaM, err = overrideFloat("BUS_COLLECTION_SEARCH_AREA", cfg.BusCollectionSearchAreaM); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrBadInput, err)
	}

	// Mirrors config.py's own assertion that the grid expansion margin is
	// wide enough to cover twice the bus-stop search radius.
	if cfg.DownloadRelationGridCellExpandDeg*111_111 <= cfg.BusCollectionSearchAreaM*2 {
		return Config{}, fmt.Errorf("%w: grid cell expansion too small for bus collection search area", errs.ErrBadInput)
	}

	return cfg, nil
}

func overrideInt(name string, fallback int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", errs.ErrBadInput, name, v, err)
	}
	return n, nil
}

func overrideFloat(name string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", errs.ErrBadInput, name, v, err)
	}
	return n, nil
}
