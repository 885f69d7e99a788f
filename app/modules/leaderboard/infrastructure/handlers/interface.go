package leaderboardhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the leaderboard module's message-handling surface.
type Handlers interface {
	HandleStandingsRequest(msg *message.Message) ([]*message.Message, error)
	HandleRatingHistoryRequest(msg *message.Message) ([]*message.Message, error)
	HandleHistoryChartRequest(msg *message.Message) ([]*message.Message, error)
	HandleStandingsExportRequest(msg *message.Message) ([]*message.Message, error)
}
