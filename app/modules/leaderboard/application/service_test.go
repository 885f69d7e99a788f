package leaderboardservice

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	leaderboarddb "github.com/rankforge/rankforge/app/modules/leaderboard/infrastructure/repositories"
	"github.com/rankforge/rankforge/app/shared/matchtypes"
	"github.com/rankforge/rankforge/app/shared/rankingtypes"
	"github.com/rankforge/rankforge/app/shared/sharedtypes"
	"github.com/rankforge/rankforge/internal/observability"
	"github.com/rankforge/rankforge/internal/rating"
)

const testGuild = sharedtypes.GuildID("guild-1")

type testEnv struct {
	svc     *LeaderboardService
	board   *FakeLeaderboardRepository
	matches *FakeMatchRepository
	players *FakePlayerRepository
	ranking *rankingtypes.Ranking
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	obs := observability.NewTestObservability()

	board := &FakeLeaderboardRepository{}
	matches := &FakeMatchRepository{}
	players := &FakePlayerRepository{Ratings: make(map[ratingKey]rating.Rating)}
	rankings := &FakeRankingRepository{Rankings: make(map[sharedtypes.RankingID]*rankingtypes.Ranking)}

	ranking := &rankingtypes.Ranking{
		ID:                sharedtypes.NewRankingID(),
		GuildID:           testGuild,
		Name:              "weekly ladder",
		Strategy:          rating.StrategyGlicko2,
		InitialRating:     1500,
		InitialDeviation:  350,
		InitialVolatility: 0.06,
	}
	if err := rankings.CreateRanking(context.Background(), nil, ranking); err != nil {
		t.Fatalf("seeding ranking: %v", err)
	}

	svc := NewLeaderboardService(
		board,
		matches,
		players,
		rankings,
		nil,
		obs.Logger,
		observability.NoOpMetrics{},
		obs.Tracer("test"),
		nil,
	)
	return &testEnv{svc: svc, board: board, matches: matches, players: players, ranking: ranking}
}

func (e *testEnv) addFinishedMatch(finished time.Time, snapshots map[sharedtypes.DiscordID]rating.Rating) {
	var players []matchtypes.MatchPlayer
	for id, r := range snapshots {
		players = append(players, matchtypes.MatchPlayer{UserID: id, Rating: r})
	}
	tf := finished
	e.matches.Matches = append(e.matches.Matches, &matchtypes.Match{
		ID:           sharedtypes.NewMatchID(),
		GuildID:      testGuild,
		RankingID:    e.ranking.ID,
		Status:       matchtypes.MatchStatusFinished,
		TimeFinished: &tf,
		Teams:        []matchtypes.Team{{Players: players}},
	})
}

func TestGetStandings_OrdersAndPositions(t *testing.T) {
	env := newTestEnv(t)
	env.board.Rows = []leaderboarddb.StandingRow{
		{UserID: "bob", Rating: 1450},
		{UserID: "alice", Rating: 1620, DisplayName: "Alice"},
		{UserID: "carol", Rating: 1500},
	}

	got, err := env.svc.GetStandings(context.Background(), GetStandingsInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
	})
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	if got.IsFailure() {
		t.Fatalf("GetStandings failed: %s", got.Failure.Reason)
	}

	standings := got.Success.Standings
	if len(standings) != 3 {
		t.Fatalf("got %d rows, want 3", len(standings))
	}
	wantOrder := []sharedtypes.DiscordID{"alice", "carol", "bob"}
	for i, want := range wantOrder {
		if standings[i].UserID != want {
			t.Errorf("position %d = %s, want %s", i+1, standings[i].UserID, want)
		}
		if standings[i].Position != i+1 {
			t.Errorf("row %d position = %d, want %d", i, standings[i].Position, i+1)
		}
	}
}

func TestGetStandings_UnknownRanking(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.svc.GetStandings(context.Background(), GetStandingsInput{
		GuildID:   testGuild,
		RankingID: sharedtypes.NewRankingID(),
	})
	if err != nil {
		t.Fatalf("GetStandings returned infra error: %v", err)
	}
	if !got.IsFailure() || !strings.Contains(got.Failure.Reason, "not found") {
		t.Fatalf("expected not-found failure, got %+v", got)
	}
}

func TestGetRatingHistory_SnapshotsThenCurrent(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	env.addFinishedMatch(base, map[sharedtypes.DiscordID]rating.Rating{
		"alice": {Rating: 1500, Deviation: 350, Volatility: 0.06},
	})
	env.addFinishedMatch(base.Add(24*time.Hour), map[sharedtypes.DiscordID]rating.Rating{
		"alice": {Rating: 1563, Deviation: 290, Volatility: 0.06},
	})
	env.players.Ratings[ratingKey{env.ranking.ID, "alice"}] = rating.Rating{Rating: 1602, Deviation: 250, Volatility: 0.06}

	got, err := env.svc.GetRatingHistory(context.Background(), GetRatingHistoryInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
		UserID:    "alice",
	})
	if err != nil {
		t.Fatalf("GetRatingHistory: %v", err)
	}
	if got.IsFailure() {
		t.Fatalf("GetRatingHistory failed: %s", got.Failure.Reason)
	}

	points := got.Success.Points
	if len(points) != 3 {
		t.Fatalf("got %d points, want snapshots + current = 3", len(points))
	}
	if points[0].Rating != 1500 || points[1].Rating != 1563 {
		t.Errorf("snapshot ratings = %v, %v; want 1500, 1563", points[0].Rating, points[1].Rating)
	}
	if points[2].Rating != 1602 {
		t.Errorf("final point = %v, want current rating 1602", points[2].Rating)
	}
	for i := 1; i < len(points); i++ {
		if points[i].At.Before(points[i-1].At) {
			t.Errorf("points out of order at %d", i)
		}
	}
}

func TestGetRatingHistory_SkipsOtherPlayersMatches(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	env.addFinishedMatch(base, map[sharedtypes.DiscordID]rating.Rating{
		"bob": {Rating: 1500, Deviation: 350},
	})
	env.players.Ratings[ratingKey{env.ranking.ID, "alice"}] = rating.Rating{Rating: 1500, Deviation: 350, Volatility: 0.06}

	got, err := env.svc.GetRatingHistory(context.Background(), GetRatingHistoryInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
		UserID:    "alice",
	})
	if err != nil {
		t.Fatalf("GetRatingHistory: %v", err)
	}
	if len(got.Success.Points) != 1 {
		t.Errorf("got %d points, want only the current rating", len(got.Success.Points))
	}
}

func TestGetRatingHistory_UnknownPlayer(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.svc.GetRatingHistory(context.Background(), GetRatingHistoryInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
		UserID:    "nobody",
	})
	if err != nil {
		t.Fatalf("GetRatingHistory returned infra error: %v", err)
	}
	if !got.IsFailure() || !strings.Contains(got.Failure.Reason, "no rating") {
		t.Fatalf("expected no-rating failure, got %+v", got)
	}
}

func TestRenderHistoryChart_ProducesPNG(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	env.addFinishedMatch(base, map[sharedtypes.DiscordID]rating.Rating{
		"alice": {Rating: 1500, Deviation: 350},
	})
	env.addFinishedMatch(base.Add(24*time.Hour), map[sharedtypes.DiscordID]rating.Rating{
		"alice": {Rating: 1563, Deviation: 290},
	})
	env.players.Ratings[ratingKey{env.ranking.ID, "alice"}] = rating.Rating{Rating: 1602, Deviation: 250}

	got, err := env.svc.RenderHistoryChart(context.Background(), RenderHistoryChartInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
		UserID:    "alice",
	})
	if err != nil {
		t.Fatalf("RenderHistoryChart: %v", err)
	}
	if got.IsFailure() {
		t.Fatalf("RenderHistoryChart failed: %s", got.Failure.Reason)
	}

	png := got.Success.PNG
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestRenderHistoryChart_NoHistoryFails(t *testing.T) {
	env := newTestEnv(t)
	env.players.Ratings[ratingKey{env.ranking.ID, "alice"}] = rating.Rating{Rating: 1500, Deviation: 350}

	got, err := env.svc.RenderHistoryChart(context.Background(), RenderHistoryChartInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
		UserID:    "alice",
	})
	if err != nil {
		t.Fatalf("RenderHistoryChart returned infra error: %v", err)
	}
	if !got.IsFailure() || !strings.Contains(got.Failure.Reason, "no match history") {
		t.Fatalf("expected no-history failure, got %+v", got)
	}
}

func TestExportStandings_RoundTripsThroughExcelize(t *testing.T) {
	env := newTestEnv(t)
	last := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	env.board.Rows = []leaderboarddb.StandingRow{
		{UserID: "alice", DisplayName: "Alice", Rating: 1620, Deviation: 120, Volatility: 0.06, MatchesPlayed: 12, LastMatchAt: &last},
		{UserID: "bob", Rating: 1450, Deviation: 200, Volatility: 0.06, MatchesPlayed: 8},
	}

	got, err := env.svc.ExportStandings(context.Background(), ExportStandingsInput{
		GuildID:   testGuild,
		RankingID: env.ranking.ID,
	})
	if err != nil {
		t.Fatalf("ExportStandings: %v", err)
	}
	if got.IsFailure() {
		t.Fatalf("ExportStandings failed: %s", got.Failure.Reason)
	}
	if !strings.HasSuffix(got.Success.Filename, ".xlsx") {
		t.Errorf("filename = %q, want .xlsx suffix", got.Success.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(got.Success.XLSX))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(standingsSheet)
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 players", len(rows))
	}
	if rows[0][0] != "Position" || rows[0][1] != "Player" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "Alice" {
		t.Errorf("first standing = %q, want Alice", rows[1][1])
	}
	if rows[2][1] != "bob" {
		t.Errorf("second standing = %q, want fallback to user id", rows[2][1])
	}
}
