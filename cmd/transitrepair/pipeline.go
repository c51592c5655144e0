package main

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/transitrepair/engine/internal/cache"
	"github.com/transitrepair/engine/internal/config"
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/errs"
	"github.com/transitrepair/engine/internal/fetchctl"
	"github.com/transitrepair/engine/internal/geoutil"
	"github.com/transitrepair/engine/internal/ingest"
	"github.com/transitrepair/engine/internal/osmapi"
	"github.com/transitrepair/engine/internal/overpass"
	"github.com/transitrepair/engine/internal/repair"
	"github.com/transitrepair/engine/internal/search"
)

// changesetPlaceholder is a random token generated once per process; it is
// substituted with the real changeset id once osmapi opens one.
var changesetPlaceholder = uuid.NewString()

// metersPerDegree is the rough meters-per-degree-of-latitude conversion
// config.py's own DOWNLOAD_RELATION_GRID_CELL_EXPAND assertion uses.
const metersPerDegree = 111_111.0

// repairRequest is one decoded WebSocket or CLI repair request.
type repairRequest struct {
	RelationID domain.NativeID `json:"relationId"`
	StartWay   domain.NativeID `json:"startWay"`
	EndWay     domain.NativeID `json:"endWay"`
	Mode       string          `json:"mode"`
	Roundtrip  bool            `json:"roundtrip"`

	// Upload, when true, opens a changeset and submits the computed
	// osmChange directly instead of only returning it for review.
	Upload        bool              `json:"upload,omitempty"`
	AccessToken   string            `json:"accessToken,omitempty"`
	ChangesetTags map[string]string `json:"changesetTags,omitempty"`
}

// warningView is the wire shape of one warnings.Warning.
type warningView struct {
	Severity int               `json:"severity"`
	Message  string            `json:"message"`
	Extra    []domain.NativeID `json:"extra,omitempty"`
}

// repairResponse is the wire shape returned for a successful repair.
type repairResponse struct {
	ChangeXML   string                     `json:"changeXml"`
	Warnings    []warningView              `json:"warnings"`
	ChangesetID int64                      `json:"changesetId,omitempty"`
	RouteGeoJSON *geojson.FeatureCollection `json:"routeGeoJson"`
}

func decodeRequest(payload []byte, out *repairRequest) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return errs.BadInput("malformed repair request: " + err.Error())
	}
	if out.RelationID == 0 || out.StartWay == 0 || out.EndWay == 0 {
		return errs.BadInput("relationId, startWay, and endWay are required")
	}
	return nil
}

// runPipeline fetches the relation's surrounding network from Overpass,
// tiled by the download grid, and runs it through internal/repair —
// mirroring web/main.py's calc_route view: query_relation's way-bbox
// lookup, the grid-cell fetch, then the route search itself. caches may be
// nil, in which case every call fetches fresh from Overpass.
func runPipeline(ctx context.Context, cfg config.Config, client *overpass.Client, caches *cache.Caches, req repairRequest) (*repairResponse, error) {
	relationBBox, err := fetchRelationBBox(ctx, client, req.RelationID)
	if err != nil {
		return nil, err
	}

	expandDeg := cfg.DownloadRelationWayBBExpandM / metersPerDegree
	expanded := relationBBox.Extend(expandDeg)

	cellSize := cfg.DownloadRelationGridSizeDeg
	cellExpand := int(math.Ceil(cfg.DownloadRelationGridCellExpandDeg / cellSize))

	cellSet := fetchctl.GridCells(expanded, cellSize, cellExpand)
	cells := make([]fetchctl.Cell, 0, len(cellSet))
	for c := range cellSet {
		cells = append(cells, c)
	}

	cellBBs, cellBBsExpanded := fetchctl.OptimizeCells(cells, cellSize, cfg.DownloadRelationGridCellExpandDeg)

	busBody, err := fetchBusArea(ctx, client, caches, req.RelationID, cellBBs, cellBBsExpanded)
	if err != nil {
		return nil, err
	}

	elements, err := overpass.DecodeElements(busBody)
	if err != nil {
		return nil, err
	}

	ways, nodes, stops := convertElements(elements)

	mode := ingest.ModeBus
	if req.Mode == "tram" {
		mode = ingest.ModeTram
	}

	if req.Upload && req.AccessToken == "" {
		return nil, errs.BadInput("upload requested without an access token")
	}

	result, err := repair.Run(repair.Request{
		RelationID:            req.RelationID,
		Mode:                  mode,
		Ways:                  ways,
		Nodes:                 nodes,
		CandidateStopFeatures: stops,
		StopSearchRadiusM:     cfg.BusCollectionSearchAreaM,
		StartWay:              req.StartWay,
		EndWay:                req.EndWay,
		Roundtrip:             req.Roundtrip,
		IncludeChangeset:      req.Upload,
		ChangesetPlaceholder:  changesetPlaceholder,
		SearchOptions:         []search.Option{search.WithWorkers(cfg.CalcRouteNProcesses)},
	})
	if err != nil {
		return nil, err
	}

	warns := make([]warningView, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warns = append(warns, warningView{Severity: int(w.Severity), Message: w.Message, Extra: w.Extra})
	}

	resp := &repairResponse{
		ChangeXML:    string(result.ChangeXML),
		Warnings:     warns,
		RouteGeoJSON: result.Route.GeoJSON(),
	}

	if req.Upload {
		osmClient := osmapi.NewClient(cfg.OSMAPIBaseURL, "transitrepair", req.AccessToken)
		tags := req.ChangesetTags
		if tags == nil {
			tags = map[string]string{"comment": "Route repair", "created_by": "transitrepair"}
		}

		uploaded, err := osmClient.Upload(ctx, tags, changesetPlaceholder, result.ChangeXML)
		if err != nil {
			return nil, err
		}
		resp.ChangesetID = uploaded.ChangesetID
	}

	return resp, nil
}

// fetchRelationBBox asks Overpass for the relation's member way ids and
// bounding boxes, and returns their union.
func fetchRelationBBox(ctx context.Context, client *overpass.Client, relationID domain.NativeID) (fetchctl.BoundingBox, error) {
	body, err := client.Do(ctx, overpass.BuildWaysQuery(relationID, 60), 60*time.Second)
	if err != nil {
		return fetchctl.BoundingBox{}, err
	}

	elements, err := overpass.DecodeElements(body)
	if err != nil {
		return fetchctl.BoundingBox{}, err
	}

	var union fetchctl.BoundingBox
	found := false
	for _, e := range elements {
		if e.Type != "way" || e.Bounds == nil {
			continue
		}
		bb := fetchctl.BoundingBox{
			MinLat: e.Bounds.MinLat, MinLon: e.Bounds.MinLon,
			MaxLat: e.Bounds.MaxLat, MaxLon: e.Bounds.MaxLon,
		}
		if !found {
			union = bb
			found = true
			continue
		}
		union = unionBBox(union, bb)
	}

	if !found {
		return fetchctl.BoundingBox{}, errs.NotFound("relation has no way members with a bounding box")
	}

	return union, nil
}

// fetchBusArea fetches the road-and-stop network for the given grid cells,
// reusing a cached response from the last 2 hours when one exists —
// mirroring query_relation's own TTLCache(maxsize=1024, ttl=7200).
func fetchBusArea(ctx context.Context, client *overpass.Client, caches *cache.Caches, relationID domain.NativeID, cellBBs, cellBBsExpanded []fetchctl.BoundingBox) ([]byte, error) {
	key := strconv.FormatInt(int64(relationID), 10)

	if caches != nil {
		if item := caches.QueryRelationHistory.Get(key); item != nil {
			if rounds := item.Value(); len(rounds) > 0 {
				return rounds[len(rounds)-1], nil
			}
		}
	}

	busQuery := overpass.BuildBusAreaQuery(cellBBs, cellBBsExpanded, 180)
	body, err := client.Do(ctx, busQuery, 180*time.Second)
	if err != nil {
		return nil, err
	}

	if caches != nil {
		caches.QueryRelationHistory.Set(key, [][]byte{body}, 0)
	}

	return body, nil
}

func unionBBox(a, b fetchctl.BoundingBox) fetchctl.BoundingBox {
	return fetchctl.BoundingBox{
		MinLat: math.Min(a.MinLat, b.MinLat),
		MinLon: math.Min(a.MinLon, b.MinLon),
		MaxLat: math.Max(a.MaxLat, b.MaxLat),
		MaxLon: math.Max(a.MaxLon, b.MaxLon),
	}
}

// convertElements splits a decoded Overpass element list into the routable
// way set, the node coordinate map, and candidate stop features —
// node-tagged platforms and stop positions only; way-based platform areas
// are out of scope here, matching the engine's node-centric stop model.
func convertElements(elements []overpass.Element) ([]ingest.RawWay, map[domain.NativeID]domain.Node, []domain.StopFeature) {
	var ways []ingest.RawWay
	nodes := make(map[domain.NativeID]domain.Node)
	var stops []domain.StopFeature

	for _, e := range elements {
		id := domain.NativeID(e.ID)

		switch e.Type {
		case "way":
			if len(e.Nodes) == 0 {
				continue
			}
			nodeIDs := make([]domain.NativeID, len(e.Nodes))
			for i, n := range e.Nodes {
				nodeIDs[i] = domain.NativeID(n)
			}
			ways = append(ways, ingest.RawWay{ID: id, NodeIDs: nodeIDs, Tags: e.Tags})

		case "node":
			at := geoutil.Point{Lat: e.Lat, Lon: e.Lon}
			nodes[id] = domain.Node{ID: id, At: at, Tags: e.Tags}

			switch e.Tags["public_transport"] {
			case "platform":
				stops = append(stops, domain.StopFeature{ID: id, Kind: domain.KindNode, PTKind: domain.KindPlatform, At: at, Tags: e.Tags, Explicit: true})
			case "stop_position":
				stops = append(stops, domain.StopFeature{ID: id, Kind: domain.KindNode, PTKind: domain.KindStopPosition, At: at, Tags: e.Tags, Explicit: true})
			}
		}
	}

	return ways, nodes, stops
}
