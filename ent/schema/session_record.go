package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionRecord is one entry of a session's answer history, kept in the
// order the questions were shown.
type SessionRecord struct {
	ent.Schema
}

func (SessionRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.Int("position").
			NonNegative(),
		field.String("block_id").
			Default(""),
		field.String("question_id").
			NotEmpty(),
		field.String("question_type").
			NotEmpty(),
		field.Enum("result").
			Values("unanswered", "correct", "incorrect"),
		field.Int64("time_spent_ms").
			Default(0),
		field.Int("attempts").
			Default(0),
		field.Int("hints_used").
			Default(0),
		field.Time("answered_at").
			Optional().
			Nillable(),
		field.String("last_answer").
			Default(""),
	}
}

func (SessionRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "position").Unique(),
	}
}
