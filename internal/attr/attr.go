// Package attr provides slog attribute constructors used across services and
// handlers, including correlation-id extraction from contexts and watermill
// messages.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/rankforge/rankforge/app/shared/sharedtypes"
)

// CorrelationIDKey is the metadata/context key carrying the correlation id.
const CorrelationIDKey = "correlation_id"

type correlationIDContextKey struct{}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, id)
}

// CorrelationIDFromContext returns the stored correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDContextKey{}).(string)
	return id
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GuildID(key string, id sharedtypes.GuildID) slog.Attr {
	return slog.String(key, string(id))
}

func UserID(key string, id sharedtypes.DiscordID) slog.Attr {
	return slog.String(key, string(id))
}

func RankingID(key string, id sharedtypes.RankingID) slog.Attr {
	return slog.String(key, id.String())
}

func MatchID(key string, id sharedtypes.MatchID) slog.Attr {
	return slog.String(key, id.String())
}

// ExtractCorrelationID pulls the correlation id off the context for logging.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDKey, CorrelationIDFromContext(ctx))
}

// CorrelationIDFromMsg pulls the correlation id off a watermill message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String(CorrelationIDKey, msg.Metadata.Get(CorrelationIDKey))
}
