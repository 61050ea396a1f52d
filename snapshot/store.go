package snapshot

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/nexus-engine/nexus"
)

// Store persists encoded snapshots under caller-chosen names.
type Store interface {
	Save(ctx context.Context, name string, snap *Snapshot) error
	Load(ctx context.Context, name string) (*Snapshot, error)
	Delete(ctx context.Context, name string) error
}

// Options is go-redis client configuration, re-exported so callers can construct a
// RedisStore without importing the redis package.
type Options = redis.Options

// RedisStore persists snapshots in redis, one key per snapshot name.
type RedisStore struct {
	Namespace string
	Client    *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects a snapshot store to redis. The namespace separates the keys
// of several engines sharing one redis instance; the nexus name is the usual choice.
func NewRedisStore(options Options, namespace string) *RedisStore {
	return &RedisStore{
		Namespace: namespace,
		Client:    redis.NewClient(&options),
	}
}

// OpenStore connects a snapshot store using the engine's resolved configuration. The
// redis address and password come from the config and the nexus name becomes the key
// namespace.
func OpenStore(cfg nexus.Config) *RedisStore {
	return NewRedisStore(Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	}, cfg.NexusName)
}

func (r *RedisStore) snapshotKey(name string) string {
	return fmt.Sprintf("%s:SNAPSHOT:%s", r.Namespace, name)
}

// Save encodes the snapshot and writes it under name, overwriting whatever was saved
// there before.
func (r *RedisStore) Save(ctx context.Context, name string, snap *Snapshot) error {
	bz, err := snap.Encode()
	if err != nil {
		return err
	}
	return eris.Wrap(r.Client.Set(ctx, r.snapshotKey(name), bz, 0).Err(), "")
}

// Load reads and decodes the snapshot saved under name, returning
// ErrSnapshotNotFound when nothing was saved there.
func (r *RedisStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	bz, err := r.Client.Get(ctx, r.snapshotKey(name)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrapf(ErrSnapshotNotFound, "no snapshot saved under %q", name)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return Decode(bz)
}

// Delete removes the snapshot saved under name. Deleting a name that holds no
// snapshot is a no-op.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	return eris.Wrap(r.Client.Del(ctx, r.snapshotKey(name)).Err(), "")
}

// Close releases the redis connection.
func (r *RedisStore) Close() error {
	log.Info().Msg("Closing snapshot store connection.")
	if err := r.Client.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}
