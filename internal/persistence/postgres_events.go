package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// PostgresEventStore is an EventStore backed by PostgreSQL.
//
// It expects an *sql.DB that uses a PostgreSQL driver, typically
// "github.com/jackc/pgx/v5/stdlib":
//
//	import _ "github.com/jackc/pgx/v5/stdlib"
//
//	db, err := sql.Open("pgx", dsn)
type PostgresEventStore struct {
	db *sql.DB
}

var _ EventStore = (*PostgresEventStore)(nil)

// NewPostgresEventStore initializes the required schema in the given
// database and returns a new PostgresEventStore.
func NewPostgresEventStore(ctx context.Context, db *sql.DB) (*PostgresEventStore, error) {
	s := &PostgresEventStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *PostgresEventStore) initSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transition_events (
			id BIGSERIAL PRIMARY KEY,
			instance_id TEXT NOT NULL,
			at BIGINT NOT NULL,
			type TEXT NOT NULL,
			definition_type TEXT NOT NULL DEFAULT '',
			transition TEXT NOT NULL DEFAULT '',
			from_state TEXT NOT NULL DEFAULT '',
			to_states TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_transition_events_instance_id ON transition_events(instance_id, id);
	`)
	return err
}

func (p *PostgresEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error {
	if ev.InstanceID == "" {
		return ErrEmptyInstanceID
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	toStates, err := encodeStates(ev.ToStates)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO transition_events (instance_id, at, type, definition_type, transition, from_state, to_states, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.InstanceID,
		at.UnixNano(),
		string(ev.Type),
		ev.DefinitionType,
		ev.Transition,
		string(ev.FromState),
		toStates,
		ev.Detail,
	)
	return err
}

func (p *PostgresEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT instance_id, at, type, definition_type, transition, from_state, to_states, detail
		FROM transition_events
		WHERE instance_id = $1
		ORDER BY id ASC`, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.TransitionEvent
	for rows.Next() {
		var (
			id       string
			atN      int64
			typ      string
			defType  string
			name     string
			from     string
			toStates string
			detail   string
		)
		if err := rows.Scan(&id, &atN, &typ, &defType, &name, &from, &toStates, &detail); err != nil {
			return nil, err
		}
		kinds, err := decodeStates(toStates)
		if err != nil {
			return nil, err
		}
		out = append(out, api.TransitionEvent{
			InstanceID:     id,
			At:             time.Unix(0, atN),
			Type:           api.EventType(typ),
			DefinitionType: defType,
			Transition:     name,
			FromState:      api.StateKind(from),
			ToStates:       kinds,
			Detail:         detail,
		})
	}
	return out, rows.Err()
}
