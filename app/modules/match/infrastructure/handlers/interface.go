package matchhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers defines the match module's message handlers.
type Handlers interface {
	HandleStartMatchRequest(msg *message.Message) ([]*message.Message, error)
	HandleRecordOutcomeRequest(msg *message.Message) ([]*message.Message, error)
	HandleUpdateOutcomeRequest(msg *message.Message) ([]*message.Message, error)
	HandleCancelMatchRequest(msg *message.Message) ([]*message.Message, error)
	HandleRescoreRequest(msg *message.Message) ([]*message.Message, error)
}
