package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answer submitted within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to Session"),
		field.String("course_id").
			NotEmpty(),
		field.String("block_id").
			Default(""),
		field.String("question_id").
			NotEmpty(),
		field.String("question_type").
			NotEmpty().
			Comment("Registry tag of the question provider"),
		field.Enum("result").
			Values("unanswered", "correct", "incorrect"),
		field.Int("attempt").
			Comment("1-based attempt number for the question"),
		field.Int("hints_used").
			Default(0),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds spent before answering"),
		field.String("answer").
			Default("").
			Comment("What the learner entered"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
	}
}
