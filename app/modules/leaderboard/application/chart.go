package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rankforge/rankforge/internal/results"
)

// RenderHistoryChart renders a player's rating trajectory as a PNG line
// chart, with a shaded band of one deviation around the rating.
func (s *LeaderboardService) RenderHistoryChart(ctx context.Context, input RenderHistoryChartInput) (results.OperationResult[HistoryChartPayload, LeaderboardFailurePayload], error) {
	return withTelemetry(s, ctx, "RenderHistoryChart", input.RankingID, func(ctx context.Context) (results.OperationResult[HistoryChartPayload, LeaderboardFailurePayload], error) {
		points, failure, err := s.historyPoints(ctx, input.GuildID, input.RankingID, input.UserID)
		if err != nil {
			return results.OperationResult[HistoryChartPayload, LeaderboardFailurePayload]{}, err
		}
		if failure != nil {
			return results.Failure[HistoryChartPayload](failure), nil
		}
		if len(points) < 2 {
			return results.Failure[HistoryChartPayload](&LeaderboardFailurePayload{
				GuildID:   input.GuildID,
				RankingID: input.RankingID,
				Reason:    fmt.Sprintf("player %s has no match history to chart", input.UserID),
			}), nil
		}

		png, err := renderHistoryPNG(string(input.UserID), points)
		if err != nil {
			return results.OperationResult[HistoryChartPayload, LeaderboardFailurePayload]{}, fmt.Errorf("failed to render chart: %w", err)
		}

		return results.Success[HistoryChartPayload, LeaderboardFailurePayload](&HistoryChartPayload{
			RankingID: input.RankingID,
			UserID:    input.UserID,
			PNG:       png,
		}), nil
	})
}

func renderHistoryPNG(title string, points []HistoryPoint) ([]byte, error) {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	upper := make([]float64, len(points))
	lower := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.At
		ys[i] = p.Rating
		upper[i] = p.Rating + p.Deviation
		lower[i] = p.Rating - p.Deviation
	}

	bandStyle := chart.Style{
		StrokeColor: drawing.ColorBlue.WithAlpha(60),
		StrokeWidth: 1.0,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "rating",
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "rating", XValues: xs, YValues: ys},
			chart.TimeSeries{Name: "+1 RD", XValues: xs, YValues: upper, Style: bandStyle},
			chart.TimeSeries{Name: "-1 RD", XValues: xs, YValues: lower, Style: bandStyle},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
