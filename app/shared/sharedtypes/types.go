// Package sharedtypes holds the identifier and value types passed between
// modules. Keeping them here avoids import cycles between module packages.
package sharedtypes

import "github.com/google/uuid"

// GuildID is a Discord guild (server) snowflake.
type GuildID string

// DiscordID is a Discord user snowflake.
type DiscordID string

// RankingID identifies one ranking within a guild.
type RankingID uuid.UUID

func (id RankingID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero UUID.
func (id RankingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewRankingID returns a fresh random RankingID.
func NewRankingID() RankingID { return RankingID(uuid.New()) }

// ParseRankingID parses the canonical string form.
func ParseRankingID(s string) (RankingID, error) {
	u, err := uuid.Parse(s)
	return RankingID(u), err
}

// MarshalText makes RankingID serialize as its canonical string form in
// JSON payloads instead of a raw byte array.
func (id RankingID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *RankingID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = RankingID(u)
	return nil
}

// MatchID identifies one match within a ranking.
type MatchID uuid.UUID

func (id MatchID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the id is the zero UUID.
func (id MatchID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewMatchID returns a fresh time-ordered MatchID. V7 ids sort by creation
// time, so the replay tie-break on id for matches finishing at the same
// instant follows insertion order.
func NewMatchID() MatchID { return MatchID(uuid.Must(uuid.NewV7())) }

// ParseMatchID parses the canonical string form.
func ParseMatchID(s string) (MatchID, error) {
	u, err := uuid.Parse(s)
	return MatchID(u), err
}

// MarshalText makes MatchID serialize as its canonical string form.
func (id MatchID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *MatchID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = MatchID(u)
	return nil
}
