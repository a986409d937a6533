package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin stamps an append-only log row with its number from the
// answer_sequence table and the time it was recorded. Rows are never
// updated, so both fields are immutable.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Positive().
			Unique().
			Immutable().
			Comment("Position in the answer log, shared by all sessions"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }).
			Immutable().
			Comment("When the answer was submitted"),
	}
}

// Range queries by time go through the timestamp index; the unique
// constraint on sequence already indexes it.
func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
