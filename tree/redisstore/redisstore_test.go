package redisstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/impurity"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func TestKeys(t *testing.T) {
	s := New(nil, "")
	assert.Equal(t, DefaultPrefix, s.prefix)
	assert.Equal(t, "id3:tree:abc", s.keyFor("abc"))
	assert.Equal(t, "abc", s.idFor("id3:tree:abc"))

	s = New(nil, "weather")
	assert.Equal(t, "weather:abc", s.keyFor("abc"))
}

func TestErrNotFound(t *testing.T) {
	err := fmt.Errorf("loading tree %q: %w", "abc", ErrNotFound)
	var storeErr Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, ErrNotFound, storeErr)
	assert.Equal(t, "tree not found", ErrNotFound.Error())
}

func TestSaveLoadDelete(t *testing.T) {
	addr := os.Getenv("ID3_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ID3_TEST_REDIS_ADDR not set")
	}
	rc := redis.NewClient(&redis.Options{Addr: addr})
	defer rc.Close()
	require.NoError(t, rc.Ping().Err())

	d, err := feature.NewDomain(
		map[string]string{"Weather": "Sunny,Rainy"},
		map[string]int{"Weather": 0},
	)
	require.NoError(t, err)
	root, err := tree.NewBranch(d.Lookup("Weather"), map[string]tree.Node{
		"Sunny": tree.NewLeaf("No"),
		"Rainy": tree.NewLeaf("Yes"),
	})
	require.NoError(t, err)
	original := &tree.Tree{Root: root, Label: "play", Measure: impurity.Entropy}

	ctx := context.Background()
	s := New(rc, "id3test:"+uuid.NewString())
	id, err := s.Save(ctx, original)
	require.NoError(t, err)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	loaded, err := s.Load(ctx, id, d)
	require.NoError(t, err)
	assert.Equal(t, original.String(), loaded.String())
	assert.Equal(t, "play", loaded.Label)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Load(ctx, id, d)
	assert.ErrorIs(t, err, ErrNotFound)
}
