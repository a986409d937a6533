package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/aprende/internal/strategy"
)

// Session is the persisted state of a learning session. It is overwritten
// on every save.
type Session struct {
	ent.Schema
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("UUID assigned when the session starts"),
		field.String("course_id").
			NotEmpty(),
		field.String("strategy").
			NotEmpty().
			Comment("Registered strategy name"),
		field.JSON("strategy_state", strategy.State{}).
			Comment("Selector cursor, seed and stride"),
		field.Time("start_time").
			Immutable(),
		field.Time("end_time").
			Optional().
			Nillable(),
		field.Int64("time_seconds").
			Default(0),
		field.String("current_block_id").
			Default(""),
		field.String("current_question_id").
			Default(""),
		field.Float("completion").
			Default(0),
		field.Float("accuracy").
			Default(0),
		field.Int("best_streak").
			Default(0),
		field.Int("score").
			Default(0),
		field.Time("updated_at"),
	}
}

func (Session) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("start_time"),
	}
}
