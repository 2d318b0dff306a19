package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	treejson "github.com/pbanos/id3/tree/json"
	"github.com/pbanos/id3/tree/redisstore"
	"go.uber.org/zap"
	"gopkg.in/redis.v5"
)

// redisLocation is the location given to save trees to Redis. Trees saved
// there are referred to as redisLocation followed by a colon and their ID.
const redisLocation = "redis"

func (rcc *rootCmdConfig) treeStore() (*redisstore.Store, func() error, error) {
	if rcc.config.Redis.Addr == "" {
		return nil, nil, fmt.Errorf("no Redis address configured: set redis.addr in the configuration file or the redis-addr flag")
	}
	rc := redis.NewClient(&redis.Options{
		Addr:     rcc.config.Redis.Addr,
		Password: rcc.config.Redis.Password,
		DB:       rcc.config.Redis.DB,
	})
	if err := rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %v", rcc.config.Redis.Addr, err)
	}
	return redisstore.New(rc, rcc.config.Redis.Prefix), rc.Close, nil
}

/*
writeTree writes the tree in JSON to the file at location, to STDOUT if
location is empty, or to the Redis store if location is "redis", in which
case the reference to load it back is printed on out.
*/
func (rcc *rootCmdConfig) writeTree(ctx context.Context, location string, t *tree.Tree, out io.Writer) error {
	switch location {
	case "":
		if err := treejson.Write(out, t); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	case redisLocation:
		store, closeStore, err := rcc.treeStore()
		if err != nil {
			return err
		}
		defer closeStore()
		id, err := store.Save(ctx, t)
		if err != nil {
			return err
		}
		rcc.logger.Info("tree saved to redis", zap.String("id", id))
		_, err = fmt.Fprintf(out, "%s:%s\n", redisLocation, id)
		return err
	}
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("creating %s: %v", location, err)
	}
	if err = treejson.Write(f, t); err != nil {
		f.Close()
		return err
	}
	rcc.logger.Debug("tree written", zap.String("path", location))
	return f.Close()
}

/*
loadTree reads a JSON tree from the file at location, or from the Redis
store if location is "redis:" followed by the ID of a saved tree.
*/
func (rcc *rootCmdConfig) loadTree(ctx context.Context, location string, d *feature.Domain) (*tree.Tree, error) {
	if id, ok := strings.CutPrefix(location, redisLocation+":"); ok {
		store, closeStore, err := rcc.treeStore()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		return store.Load(ctx, id, d)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", location, err)
	}
	defer f.Close()
	t, err := treejson.Read(f, d)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %w", location, err)
	}
	return t, nil
}
