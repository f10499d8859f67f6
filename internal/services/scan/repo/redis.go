package repo

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	perr "github.com/Kropiunig/domain-radar/internal/platform/errors"
	"github.com/Kropiunig/domain-radar/internal/services/scan/domain"
)

const (
	redisChecked    = "radar:checked"
	redisFound      = "radar:found"
	redisFoundOrder = "radar:found:order"
	redisStatus     = "radar:status"
)

// Redis persists run state in redis. The checked set grows member by
// member via the incremental added list; findings live in a hash keyed
// by domain plus a list holding discovery order
type Redis struct {
	rds *redis.Client
}

// NewRedis wraps an existing client
func NewRedis(rds *redis.Client) (*Redis, error) {
	if rds == nil {
		return nil, perr.InvalidArgf("redis client required")
	}
	return &Redis{rds: rds}, nil
}

// LoadChecked reads the full checked set
func (r *Redis) LoadChecked(ctx context.Context) ([]string, error) {
	out, err := r.rds.SMembers(ctx, redisChecked).Result()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load checked set")
	}
	return out, nil
}

// LoadFound reads findings in their discovery order
func (r *Redis) LoadFound(ctx context.Context) ([]domain.Finding, error) {
	order, err := r.rds.LRange(ctx, redisFoundOrder, 0, -1).Result()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load found order")
	}
	if len(order) == 0 {
		return nil, nil
	}
	docs, err := r.rds.HMGet(ctx, redisFound, order...).Result()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load findings")
	}
	out := make([]domain.Finding, 0, len(order))
	for i, doc := range docs {
		s, ok := doc.(string)
		if !ok {
			continue
		}
		var f domain.Finding
		if err := json.Unmarshal([]byte(s), &f); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode finding %s", order[i])
		}
		out = append(out, f)
	}
	return out, nil
}

// LoadStatus reads the last run status; absent means zero
func (r *Redis) LoadStatus(ctx context.Context) (domain.RunStatus, error) {
	b, err := r.rds.Get(ctx, redisStatus).Bytes()
	if err == redis.Nil {
		return domain.RunStatus{}, nil
	}
	if err != nil {
		return domain.RunStatus{}, perr.Wrap(err, perr.ErrorCodeDB, "load run status")
	}
	var st domain.RunStatus
	if err := json.Unmarshal(b, &st); err != nil {
		return domain.RunStatus{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode run status")
	}
	return st, nil
}

// SaveChecked adds the members that joined since the last save; the
// snapshot is ignored because the set only ever grows
func (r *Redis) SaveChecked(ctx context.Context, _ []string, added []string) error {
	if len(added) == 0 {
		return nil
	}
	members := make([]any, len(added))
	for i, d := range added {
		members[i] = d
	}
	if err := r.rds.SAdd(ctx, redisChecked, members...).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "save checked set")
	}
	return nil
}

// SaveFound rewrites the hash and order list to match the registry
func (r *Redis) SaveFound(ctx context.Context, findings []domain.Finding) error {
	_, err := r.rds.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisFound, redisFoundOrder)
		if len(findings) == 0 {
			return nil
		}
		fields := make([]any, 0, len(findings)*2)
		order := make([]any, 0, len(findings))
		for _, f := range findings {
			doc, err := json.Marshal(f)
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeJSON, "encode finding %s", f.Domain)
			}
			fields = append(fields, f.Domain, string(doc))
			order = append(order, f.Domain)
		}
		pipe.HSet(ctx, redisFound, fields...)
		pipe.RPush(ctx, redisFoundOrder, order...)
		return nil
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "save findings")
	}
	return nil
}

// SaveStatus rewrites the status document
func (r *Redis) SaveStatus(ctx context.Context, st domain.RunStatus) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode run status")
	}
	if err := r.rds.Set(ctx, redisStatus, doc, 0).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "save run status")
	}
	return nil
}
