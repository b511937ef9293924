// Package redisstore implements the session.Store contract on Redis. Each
// record is a hash keyed by session id, with a per-user set indexing that
// user's sessions. Record keys expire with the refresh credential lifetime:
// once the signed credential can no longer verify, the record has no reader.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Kade-Lor/goSession/session"
)

// ErrRedisUnavailable is an exported constant or variable used by the session engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

const revokeScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "revoked", "1")
return 1
`

var revokeLua = redis.NewScript(revokeScript)

// Store is a Redis-backed [session.Store].
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore binds a store to client. prefix namespaces all keys; ttl should
// match the refresh credential lifetime (records outliving their credential
// are unreadable garbage).
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "gs"
	}
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) recordKey(id string) string {
	return s.prefix + ":sess:" + id
}

func (s *Store) userKey(userID string) string {
	return s.prefix + ":user:" + userID
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) Create(ctx context.Context, userID string, meta session.Metadata) (*session.Record, error) {
	rec := session.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Revoked:   false,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now().UTC(),
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.recordKey(rec.ID), recordFields(rec))
	if s.ttl > 0 {
		pipe.Expire(ctx, s.recordKey(rec.ID), s.ttl)
	}
	pipe.SAdd(ctx, s.userKey(userID), rec.ID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.userKey(userID), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := rec
	return &out, nil
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) FindByID(ctx context.Context, id string) (*session.Record, error) {
	fields, err := s.client.HGetAll(ctx, s.recordKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, session.ErrNotFound
	}

	rec, err := recordFromFields(id, fields)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListActiveByUser describes the listactivebyuser operation and its observable behavior.
//
// ListActiveByUser may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) ListActiveByUser(ctx context.Context, userID string) ([]session.Record, error) {
	ids, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(ids) == 0 {
		return []session.Record{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.recordKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	out := make([]session.Record, 0, len(ids))
	var stale []interface{}
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			// Record expired out from under the index; drop the member.
			stale = append(stale, ids[i])
			continue
		}
		rec, err := recordFromFields(ids[i], fields)
		if err != nil {
			continue
		}
		if rec.Revoked {
			continue
		}
		out = append(out, *rec)
	}

	if len(stale) > 0 {
		_ = s.client.SRem(ctx, s.userKey(userID), stale...).Err()
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// Revoke describes the revoke operation and its observable behavior.
//
// Revoke may return an error when input validation, dependency calls, or security checks fail.
func (s *Store) Revoke(ctx context.Context, id string) (*session.Record, error) {
	existed, err := revokeLua.Run(ctx, s.client, []string{s.recordKey(id)}).Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if existed == 0 {
		return nil, session.ErrNotFound
	}

	return s.FindByID(ctx, id)
}

func recordFields(rec session.Record) map[string]interface{} {
	revoked := "0"
	if rec.Revoked {
		revoked = "1"
	}
	return map[string]interface{}{
		"user_id":    rec.UserID,
		"revoked":    revoked,
		"ip":         rec.IP,
		"user_agent": rec.UserAgent,
		"created_at": strconv.FormatInt(rec.CreatedAt.UnixNano(), 10),
	}
}

func recordFromFields(id string, fields map[string]string) (*session.Record, error) {
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session record %s: %v", id, err)
	}

	return &session.Record{
		ID:        id,
		UserID:    fields["user_id"],
		Revoked:   fields["revoked"] == "1",
		IP:        fields["ip"],
		UserAgent: fields["user_agent"],
		CreatedAt: time.Unix(0, createdAt).UTC(),
	}, nil
}
