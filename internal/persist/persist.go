// Package persist saves and loads whole-store snapshots.
//
// Every backend writes a snapshot in one transaction, so a crash during a
// save leaves the previous snapshot readable.
package persist

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/coopstore/coopstore/internal/grocery"
)

// ErrNoSnapshot is returned by Load when nothing was saved yet
var ErrNoSnapshot = errors.New("persist: no snapshot saved")

// SnapshotStore is a durable home for store snapshots
type SnapshotStore interface {
	// Save writes snap, replacing what Load returns
	Save(ctx context.Context, snap *grocery.Snapshot) error
	// Load returns the latest snapshot or ErrNoSnapshot
	Load(ctx context.Context) (*grocery.Snapshot, error)
	// LastSaved is the time of the latest save, zero when none
	LastSaved(ctx context.Context) (time.Time, error)
	Close() error
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func encode(snap *grocery.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("persist: nil snapshot")
	}
	data, err := json.Marshal(snap)
	return data, errors.Wrap(err, "encode snapshot")
}

func decode(data []byte) (*grocery.Snapshot, error) {
	var snap grocery.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return &snap, nil
}
