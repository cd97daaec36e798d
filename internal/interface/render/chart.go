package render

import (
	"context"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

// ChartRenderer draws a GraphSpec as a dual-axis line chart PNG: speed on
// the primary axis, altitude on the secondary. X-axis tick labels are
// suppressed; a trail has far too many samples to label legibly.
type ChartRenderer struct {
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewChartRenderer creates a new graph renderer.
func NewChartRenderer(m *metrics.Metrics, logger logger.Logger) *ChartRenderer {
	return &ChartRenderer{
		metrics: m,
		logger:  logger,
	}
}

// RenderGraph renders the speed/altitude graph to path.
func (r *ChartRenderer) RenderGraph(ctx context.Context, spec *entity.GraphSpec, path string) error {
	xs := make([]float64, len(spec.Speeds))
	for i := range xs {
		xs[i] = float64(i)
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Name: "Speed (kt)",
		},
		YAxisSecondary: chart.YAxis{
			Name: "Altitude (ft)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Speed",
				XValues: xs,
				YValues: spec.Speeds,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Altitude",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: spec.Altitudes,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render graph: create %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render graph: %w", err)
	}

	if r.metrics != nil {
		r.metrics.RendersTotal.WithLabelValues("graph").Inc()
	}
	r.logger.Debug("Graph saved", "path", path, "samples", len(spec.Speeds))

	return nil
}
