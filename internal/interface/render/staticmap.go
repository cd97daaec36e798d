package render

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"os"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"
)

const (
	mapWidth  = 1024
	mapHeight = 768

	pathWeight     = 3.0
	waypointRadius = 150
	endpointRadius = 900
	startPinSize   = 20.0
)

var (
	pathColor     = color.RGBA{R: 0x1e, G: 0x66, B: 0xd0, A: 0xff}
	waypointColor = color.RGBA{R: 0x1e, G: 0x66, B: 0xd0, A: 0xff}
	endpointColor = color.RGBA{R: 0xd0, G: 0x2e, B: 0x2e, A: 0xff}
	startColor    = color.RGBA{R: 0x2e, G: 0xa0, B: 0x4f, A: 0xff}
	destColor     = color.RGBA{R: 0xd0, G: 0x2e, B: 0x2e, A: 0xff}
	fillColor     = color.RGBA{R: 0xd0, G: 0x2e, B: 0x2e, A: 0x80}
)

// StaticMapRenderer draws a MapSpec onto OSM tiles and writes a PNG.
type StaticMapRenderer struct {
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewStaticMapRenderer creates a new map renderer.
func NewStaticMapRenderer(m *metrics.Metrics, logger logger.Logger) *StaticMapRenderer {
	return &StaticMapRenderer{
		metrics: m,
		logger:  logger,
	}
}

// RenderMap renders the flight-path map to path.
func (r *StaticMapRenderer) RenderMap(ctx context.Context, spec *entity.MapSpec, path string) error {
	mapCtx := sm.NewContext()
	mapCtx.SetSize(mapWidth, mapHeight)

	line := make([]s2.LatLng, len(spec.Path))
	for i, point := range spec.Path {
		line[i] = s2.LatLngFromDegrees(point.Latitude, point.Longitude)
	}
	mapCtx.AddObject(sm.NewPath(line, pathColor, pathWeight))

	for _, marker := range spec.Markers {
		pos := s2.LatLngFromDegrees(marker.Position.Latitude, marker.Position.Longitude)
		switch marker.Kind {
		case entity.MarkerStart:
			mapCtx.AddObject(sm.NewMarker(pos, startColor, startPinSize))
		case entity.MarkerEnd:
			mapCtx.AddObject(sm.NewCircle(pos, endpointColor, fillColor, endpointRadius, pathWeight))
		case entity.MarkerDestination:
			mapCtx.AddObject(sm.NewCircle(pos, destColor, fillColor, endpointRadius, pathWeight))
		case entity.MarkerWaypoint:
			mapCtx.AddObject(sm.NewCircle(pos, waypointColor, waypointColor, waypointRadius, 1))
		}
	}

	bbox, err := sm.CreateBBox(spec.Bounds.North, spec.Bounds.West, spec.Bounds.South, spec.Bounds.East)
	if err != nil {
		return fmt.Errorf("render map: bbox: %w", err)
	}
	mapCtx.SetBoundingBox(*bbox)

	img, err := mapCtx.Render()
	if err != nil {
		return fmt.Errorf("render map: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render map: create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("render map: encode: %w", err)
	}

	if r.metrics != nil {
		r.metrics.RendersTotal.WithLabelValues("map").Inc()
	}
	r.logger.Debug("Map saved", "path", path, "points", len(spec.Path))

	return nil
}
