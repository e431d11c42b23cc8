package persistence

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/flowlight/pkg/api"
)

// RedisEventStore is an EventStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>events:<id>          => LIST of gob-encoded redisEventPayload, oldest first
//	<prefix>idx:all              => SET of instance IDs with at least one event
//	<prefix>idx:wf:<definition>  => SET of instance IDs for a given definition type
//
// The event and both index updates are written in one MULTI/EXEC.
type RedisEventStore struct {
	client *redis.Client
	prefix string
}

var _ EventStore = (*RedisEventStore)(nil)

type redisEventPayload struct {
	InstanceID     string
	At             int64
	Type           string
	DefinitionType string
	Transition     string
	FromState      string
	ToStates       []string
	Detail         string
}

// NewRedisEventStore creates a RedisEventStore.
// prefix is optional but recommended (e.g. "flowlight:").
func NewRedisEventStore(client *redis.Client, prefix string) *RedisEventStore {
	if prefix == "" {
		prefix = "flowlight:"
	}
	return &RedisEventStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisEventStore) keyEvents(id string) string {
	return s.prefix + "events:" + id
}

func (s *RedisEventStore) keyAll() string {
	return s.prefix + "idx:all"
}

func (s *RedisEventStore) keyWorkflow(definitionType string) string {
	return s.prefix + "idx:wf:" + definitionType
}

func encodeRedisEvent(ev api.TransitionEvent) ([]byte, error) {
	to := make([]string, 0, len(ev.ToStates))
	for _, k := range ev.ToStates {
		to = append(to, string(k))
	}
	payload := redisEventPayload{
		InstanceID:     ev.InstanceID,
		At:             ev.At.UnixNano(),
		Type:           string(ev.Type),
		DefinitionType: ev.DefinitionType,
		Transition:     ev.Transition,
		FromState:      string(ev.FromState),
		ToStates:       to,
		Detail:         ev.Detail,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRedisEvent(data []byte) (api.TransitionEvent, error) {
	var payload redisEventPayload
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload); err != nil {
		return api.TransitionEvent{}, err
	}

	var to []api.StateKind
	for _, k := range payload.ToStates {
		to = append(to, api.StateKind(k))
	}
	return api.TransitionEvent{
		InstanceID:     payload.InstanceID,
		At:             time.Unix(0, payload.At),
		Type:           api.EventType(payload.Type),
		DefinitionType: payload.DefinitionType,
		Transition:     payload.Transition,
		FromState:      api.StateKind(payload.FromState),
		ToStates:       to,
		Detail:         payload.Detail,
	}, nil
}

func (s *RedisEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error {
	if ev.InstanceID == "" {
		return ErrEmptyInstanceID
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	data, err := encodeRedisEvent(ev)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.keyEvents(ev.InstanceID), data)
	pipe.SAdd(ctx, s.keyAll(), ev.InstanceID)
	if ev.DefinitionType != "" {
		pipe.SAdd(ctx, s.keyWorkflow(ev.DefinitionType), ev.InstanceID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return nil
}

func (s *RedisEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	raw, err := s.client.LRange(ctx, s.keyEvents(instanceID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]api.TransitionEvent, 0, len(raw))
	for _, r := range raw {
		ev, err := decodeRedisEvent([]byte(r))
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// InstanceIDs returns the ids of instances with recorded history, optionally
// limited to one definition type. The result is sorted.
func (s *RedisEventStore) InstanceIDs(ctx context.Context, definitionType string) ([]string, error) {
	key := s.keyAll()
	if definitionType != "" {
		key = s.keyWorkflow(definitionType)
	}

	ids, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
