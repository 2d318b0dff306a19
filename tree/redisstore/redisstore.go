/*
Package redisstore keeps grown trees on a Redis database, each of them
JSON-encoded under its own key.
*/
package redisstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	treejson "github.com/pbanos/id3/tree/json"
	"gopkg.in/redis.v5"
)

// DefaultPrefix is the key prefix used when none is given.
const DefaultPrefix = "id3:tree"

// Error represents an error related with the tree store.
type Error string

// ErrNotFound is returned when no tree is stored with a given ID.
const ErrNotFound = Error("tree not found")

func (e Error) Error() string {
	return string(e)
}

/*
Store saves trees on Redis under keys made of a prefix and an ID
generated for each tree, and loads them back.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

// New takes a redis client and a key prefix and returns a Store that
// works with them. An empty prefix is replaced by DefaultPrefix.
func New(rc *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{rc: rc, prefix: prefix}
}

/*
Save takes a context and a tree, stores it and returns the ID under which
it can be loaded, or an error if it cannot be encoded or stored.
*/
func (s *Store) Save(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := treejson.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("saving tree: %v", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id := uuid.NewString()
		ok, err := s.rc.SetNX(s.keyFor(id), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("saving tree in redis: %v", err)
		}
		if ok {
			return id, nil
		}
	}
}

/*
Load takes a context, the ID of a stored tree and the domain of the
features it tests, and returns the tree. An error wrapping ErrNotFound is
returned if there is no tree with that ID.
*/
func (s *Store) Load(ctx context.Context, id string, d *feature.Domain) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.rc.Get(s.keyFor(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("loading tree %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tree %q from redis: %v", id, err)
	}
	t, err := treejson.Unmarshal(data, d)
	if err != nil {
		return nil, fmt.Errorf("loading tree %q: %w", id, err)
	}
	return t, nil
}

// Delete removes the tree with the given ID from the store.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.rc.Del(s.keyFor(id)).Err(); err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", id, err)
	}
	return nil
}

// List returns the IDs of the trees in the store.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := s.rc.Keys(s.prefix + ":*").Result()
	if err != nil {
		return nil, fmt.Errorf("listing trees in redis: %v", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, s.idFor(k))
	}
	return ids, nil
}

func (s *Store) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

func (s *Store) idFor(key string) string {
	return strings.TrimPrefix(key, s.prefix+":")
}
