// Package utils provides the watermill payload helpers shared by all module
// handlers: unmarshaling inbound payloads and building result messages that
// preserve correlation metadata.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/rankforge/rankforge/internal/attr"
)

// Helpers is the contract handlers use for payload plumbing.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, out any) error
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

// TopicMetadataKey records the destination topic on result messages so the
// router can publish them without re-deriving it.
const TopicMetadataKey = "topic"

// HelperService is the production Helpers implementation.
type HelperService struct{}

// NewHelperService returns a ready HelperService.
func NewHelperService() *HelperService { return &HelperService{} }

var _ Helpers = (*HelperService)(nil)

// UnmarshalPayload decodes the message payload into out.
func (h *HelperService) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload into %T: %w", out, err)
	}
	return nil
}

// CreateResultMessage marshals payload into a new message destined for topic,
// carrying over the original message's correlation id.
func (h *HelperService) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)
	if original != nil {
		if cid := original.Metadata.Get(attr.CorrelationIDKey); cid != "" {
			msg.Metadata.Set(attr.CorrelationIDKey, cid)
		}
	}
	return msg, nil
}

// CreateNewMessage is CreateResultMessage without an originating message; a
// fresh correlation id is minted.
func (h *HelperService) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateResultMessage(nil, payload, topic)
	if err != nil {
		return nil, err
	}
	msg.Metadata.Set(attr.CorrelationIDKey, uuid.New().String())
	return msg, nil
}
