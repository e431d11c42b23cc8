package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// SQLiteEventStore stores transition events in SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type SQLiteEventStore struct {
	db *sql.DB
}

// Ensure SQLiteEventStore implements the interface.
var _ EventStore = (*SQLiteEventStore)(nil)

// NewSQLiteEventStore initializes the required schema in the given
// database and returns a new SQLiteEventStore.
func NewSQLiteEventStore(db *sql.DB) (*SQLiteEventStore, error) {
	s := &SQLiteEventStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteEventStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transition_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instance_id TEXT NOT NULL,
			at INTEGER NOT NULL,
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

func (s *SQLiteEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error {
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
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transition_events (instance_id, at, type, definition_type, transition, from_state, to_states, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
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

func (s *SQLiteEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, at, type, definition_type, transition, from_state, to_states, detail
		FROM transition_events
		WHERE instance_id = ?
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
