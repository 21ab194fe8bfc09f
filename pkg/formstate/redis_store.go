package formstate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps states as JSON values under "<prefix>:state:<form>:<session>".
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces the keys. Default: "fieldrules".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires a session's state ttl after its last save. Zero disables expiry.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		db:     client,
		prefix: "fieldrules",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(form, session string) (string, error) {
	if strings.Contains(form, ":") {
		return "", ErrInvalidFormName
	}
	return s.prefix + ":state:" + form + ":" + session, nil
}

// globEscaper escapes the SCAN MATCH metacharacters.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func (s *RedisStore) Load(ctx context.Context, form, session string) (State, error) {
	key, err := s.key(form, session)
	if err != nil {
		return State{}, errors.Join(ErrFailedToLoadState, err)
	}
	raw, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrStateNotFound
	}
	if err != nil {
		return State{}, errors.Join(ErrFailedToLoadState, err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, errors.Join(ErrFailedToLoadState, err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, st State) error {
	key, err := s.key(st.Form, st.Session)
	if err != nil {
		return errors.Join(ErrFailedToSaveState, err)
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return errors.Join(ErrFailedToSaveState, err)
	}
	if err := s.db.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return errors.Join(ErrFailedToSaveState, err)
	}
	return nil
}

// Delete forgets the state of a session.
func (s *RedisStore) Delete(ctx context.Context, form, session string) error {
	key, err := s.key(form, session)
	if err != nil {
		return err
	}
	return s.db.Del(ctx, key).Err()
}

// Sessions lists the sessions with a stored state for form, using SCAN.
func (s *RedisStore) Sessions(ctx context.Context, form string) ([]string, error) {
	prefix, err := s.key(form, "")
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadState, err)
	}
	pattern := globEscaper.Replace(prefix) + "*"

	var (
		sessions []string
		cursor   uint64
	)
	for {
		keys, next, err := s.db.Scan(ctx, cursor, pattern, 500).Result()
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadState, err)
		}
		for _, k := range keys {
			sessions = append(sessions, k[len(prefix):])
		}
		if cursor = next; cursor == 0 {
			break
		}
	}
	return sessions, nil
}
