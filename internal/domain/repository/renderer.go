package repository

import (
	"context"

	"flightcast-service/internal/domain/entity"
)

// MapRenderer turns a MapSpec into a raster artifact at path.
type MapRenderer interface {
	RenderMap(ctx context.Context, spec *entity.MapSpec, path string) error
}

// GraphRenderer turns a GraphSpec into a raster artifact at path.
type GraphRenderer interface {
	RenderGraph(ctx context.Context, spec *entity.GraphSpec, path string) error
}
