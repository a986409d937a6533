package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/aprende/ent/schema"
)

// Table and column names shared by the repositories.
const (
	tableSessions     = "sessions"
	tableRecords      = "session_records"
	tableAnswerEvents = "answer_events"
)

// entity binds an ent schema declaration to its table name. The index
// prefix follows ent's naming: the lower-cased entity name.
type entity struct {
	table  string
	prefix string
	schema ent.Interface
}

var entities = []entity{
	{table: tableSessions, prefix: "session", schema: entschema.Session{}},
	{table: tableRecords, prefix: "sessionrecord", schema: entschema.SessionRecord{}},
	{table: tableAnswerEvents, prefix: "answerevent", schema: entschema.AnswerEvent{}},
}

// buildTables turns the entity declarations into migration tables and
// links session_records to sessions with a cascading foreign key.
func buildTables() ([]*schema.Table, error) {
	byName := make(map[string]*schema.Table, len(entities))
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		byName[e.table] = t
		tables = append(tables, t)
	}

	sessions, records := byName[tableSessions], byName[tableRecords]
	fkCol, err := column(records, "session_id")
	if err != nil {
		return nil, err
	}
	records.ForeignKeys = append(records.ForeignKeys, &schema.ForeignKey{
		Symbol:     "session_records_sessions_records",
		Columns:    []*schema.Column{fkCol},
		RefTable:   sessions,
		RefColumns: sessions.PrimaryKey,
		OnDelete:   schema.Cascade,
	})
	return tables, nil
}

func tableOf(e entity) (*schema.Table, error) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range e.schema.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, e.schema.Fields()...)
	indexes = append(indexes, e.schema.Indexes()...)

	t := &schema.Table{Name: e.table}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		for _, en := range d.Enums {
			col.Enums = append(col.Enums, en.V)
		}
		if col.Name == "id" {
			t.PrimaryKey = []*schema.Column{col}
		}
		t.Columns = append(t.Columns, col)
	}
	if t.PrimaryKey == nil {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.Columns = append([]*schema.Column{id}, t.Columns...)
		t.PrimaryKey = []*schema.Column{id}
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		ix := &schema.Index{Unique: d.Unique, Name: d.StorageKey}
		for _, name := range d.Fields {
			col, err := column(t, name)
			if err != nil {
				return nil, err
			}
			ix.Columns = append(ix.Columns, col)
		}
		if ix.Name == "" {
			ix.Name = e.prefix + "_" + strings.Join(d.Fields, "_")
		}
		t.Indexes = append(t.Indexes, ix)
	}
	return t, nil
}

func column(t *schema.Table, name string) (*schema.Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("table %s has no column %q", t.Name, name)
}

// migrate creates or extends the tables. Existing columns are never dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables, err := buildTables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
