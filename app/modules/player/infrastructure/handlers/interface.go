package playerhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the player module's message-handling surface.
type Handlers interface {
	HandleRegisterPlayerRequest(msg *message.Message) ([]*message.Message, error)
	HandleGetRatingRequest(msg *message.Message) ([]*message.Message, error)
	HandleListPlayersRequest(msg *message.Message) ([]*message.Message, error)
}
