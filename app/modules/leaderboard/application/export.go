package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	"github.com/rankforge/rankforge/internal/results"
)

const standingsSheet = "Standings"

// ExportStandings builds an xlsx workbook of the full standings.
func (s *LeaderboardService) ExportStandings(ctx context.Context, input ExportStandingsInput) (results.OperationResult[StandingsExportPayload, LeaderboardFailurePayload], error) {
	return withTelemetry(s, ctx, "ExportStandings", input.RankingID, func(ctx context.Context) (results.OperationResult[StandingsExportPayload, LeaderboardFailurePayload], error) {
		standings, err := s.GetStandings(ctx, GetStandingsInput{
			GuildID:   input.GuildID,
			RankingID: input.RankingID,
		})
		if err != nil {
			return results.OperationResult[StandingsExportPayload, LeaderboardFailurePayload]{}, err
		}
		if standings.IsFailure() {
			return results.Failure[StandingsExportPayload](standings.Failure), nil
		}

		data, err := buildStandingsWorkbook(standings.Success.Standings)
		if err != nil {
			return results.OperationResult[StandingsExportPayload, LeaderboardFailurePayload]{}, fmt.Errorf("failed to build workbook: %w", err)
		}

		return results.Success[StandingsExportPayload, LeaderboardFailurePayload](&StandingsExportPayload{
			RankingID: input.RankingID,
			Filename:  fmt.Sprintf("standings-%s.xlsx", input.RankingID),
			XLSX:      data,
		}), nil
	})
}

func buildStandingsWorkbook(standings []leaderboarddb.StandingRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return nil, err
	}

	headers := []string{"Position", "Player", "Rating", "Deviation", "Volatility", "Matches", "Last Match"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(standingsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range standings {
		name := row.DisplayName
		if name == "" {
			name = string(row.UserID)
		}
		lastMatch := ""
		if row.LastMatchAt != nil {
			lastMatch = row.LastMatchAt.UTC().Format("2006-01-02 15:04")
		}
		values := []any{row.Position, name, row.Rating, row.Deviation, row.Volatility, row.MatchesPlayed, lastMatch}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(standingsSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
