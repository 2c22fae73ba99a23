package persist

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/coopstore/coopstore/internal/grocery"
)

var (
	bucketName = []byte("coopstore")
	stateKey   = []byte("state")
	metaKey    = []byte("meta")
)

type boltMeta struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Size    int       `json:"size"`
}

// BoltStore keeps the latest snapshot in a single bbolt file
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database file at path
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage dir")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(ctx context.Context, snap *grocery.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(boltMeta{Version: snap.Version, SavedAt: snap.SavedAt, Size: len(payload)})
	if err != nil {
		return errors.Wrap(err, "encode meta")
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put(stateKey, payload); err != nil {
			return err
		}
		return b.Put(metaKey, meta)
	})
	return errors.Wrap(err, "bolt save")
}

func (s *BoltStore) Load(ctx context.Context) (*grocery.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var snap *grocery.Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get(stateKey)
		if data == nil {
			return ErrNoSnapshot
		}
		var err error
		snap, err = decode(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *BoltStore) LastSaved(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	var meta boltMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketName).Get(metaKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &meta)
	})
	return meta.SavedAt, errors.Wrap(err, "read meta")
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
