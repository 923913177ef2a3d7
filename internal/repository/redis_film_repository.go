package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// casScript replaces a film document only if it still holds the exact bytes
// the caller read.  Returns 1 on success and 0 when the document changed.
var casScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[1])
	if current == ARGV[1] then
		redis.call('SET', KEYS[1], ARGV[2])
		return 1
	end
	return 0
`)

// RedisFilmRepo is the document backend.  Each film is one JSON document at
// "<prefix>:film:<id>" with its sessions embedded; the set "<prefix>:films"
// indexes the ids.
type RedisFilmRepo struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisFilmRepo constructs a RedisFilmRepo.  An empty prefix defaults to
// "afisha".
func NewRedisFilmRepo(rdb *redis.Client, prefix string) *RedisFilmRepo {
	if prefix == "" {
		prefix = "afisha"
	}
	return &RedisFilmRepo{rdb: rdb, prefix: prefix}
}

func (r *RedisFilmRepo) filmKey(id string) string { return r.prefix + ":film:" + id }
func (r *RedisFilmRepo) indexKey() string         { return r.prefix + ":films" }

// FindAll reads the id index and loads every document, ordered by id.
func (r *RedisFilmRepo) FindAll(ctx context.Context) ([]model.Film, error) {
	ids, err := r.rdb.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return r.FindByIDs(ctx, ids)
}

// FindByID returns the film document or ErrFilmNotFound.
func (r *RedisFilmRepo) FindByID(ctx context.Context, id string) (*model.Film, error) {
	raw, err := r.rdb.Get(ctx, r.filmKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	f, err := decodeFilm(raw)
	if err != nil {
		return nil, fmt.Errorf("decode film %s: %w", id, err)
	}
	return f, nil
}

// FindByIDs loads the documents with a single MGET; missing keys are skipped.
func (r *RedisFilmRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Film, error) {
	films := []model.Film{}
	if len(ids) == 0 {
		return films, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.filmKey(id))
	}
	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		f, err := decodeFilm(raw)
		if err != nil {
			return nil, fmt.Errorf("decode film %s: %w", ids[i], err)
		}
		films = append(films, *f)
	}
	return films, nil
}

// Count returns the cardinality of the id index.
func (r *RedisFilmRepo) Count(ctx context.Context) (int, error) {
	n, err := r.rdb.SCard(ctx, r.indexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// SaveTaken rewrites the film document with the session's taken set replaced.
// The write goes through casScript keyed on the raw document that was read,
// so a concurrent writer makes it fail with ErrStaleSession.
func (r *RedisFilmRepo) SaveTaken(ctx context.Context, filmID, sessionID string, prev, next model.Taken) error {
	key := r.filmKey(filmID)
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrFilmNotFound
		}
		return err
	}
	f, err := decodeFilm(raw)
	if err != nil {
		return fmt.Errorf("decode film %s: %w", filmID, err)
	}
	session := f.FindSession(sessionID)
	if session == nil {
		return ErrFilmNotFound
	}
	if !session.Taken.Equal(prev) {
		return ErrStaleSession
	}
	session.Taken = next
	updated, err := json.Marshal(f)
	if err != nil {
		return err
	}
	n, err := casScript.Run(ctx, r.rdb, []string{key}, raw, string(updated)).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleSession
	}
	return nil
}

func decodeFilm(raw string) (*model.Film, error) {
	var f model.Film
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Import writes films and indexes their ids in one MULTI/EXEC.  Existing
// documents with the same id are overwritten.
func (r *RedisFilmRepo) Import(ctx context.Context, films []model.Film) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, f := range films {
			doc, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("encode film %s: %w", f.ID, err)
			}
			p.Set(ctx, r.filmKey(f.ID), string(doc), 0)
			p.SAdd(ctx, r.indexKey(), f.ID)
		}
		return nil
	})
	return err
}
