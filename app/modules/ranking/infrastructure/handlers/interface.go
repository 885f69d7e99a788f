package rankinghandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the ranking module's message-handling surface.
type Handlers interface {
	HandleCreateRankingRequest(msg *message.Message) ([]*message.Message, error)
	HandleUpdateConfigRequest(msg *message.Message) ([]*message.Message, error)
	HandleChangeStrategyRequest(msg *message.Message) ([]*message.Message, error)
	HandleGetRankingRequest(msg *message.Message) ([]*message.Message, error)
	HandleListRankingsRequest(msg *message.Message) ([]*message.Message, error)
}
