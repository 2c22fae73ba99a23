package domain

import "time"

// SnapshotRecord stores one serialized copy of the whole store
type SnapshotRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Version   int       `json:"version"`
	Payload   []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName Specify table name
func (SnapshotRecord) TableName() string {
	return "store_snapshots"
}

var Tables = []interface{}{
	&SnapshotRecord{},
}
