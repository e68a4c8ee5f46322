package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRecord mirrors the cart_snapshots table.
type snapshotRecord struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Currency  string    `gorm:"column:currency"`
	Payload   []byte    `gorm:"column:payload"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (snapshotRecord) TableName() string {
	return "cart_snapshots"
}

// GormSnapshotRepo persists cart mirrors so a restart does not present an
// empty cart before the first platform refresh completes.
type GormSnapshotRepo struct {
	db *gorm.DB
}

func NewGormSnapshotRepo(db *gorm.DB) (*GormSnapshotRepo, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle is required")
	}
	return &GormSnapshotRepo{db: db}, nil
}

// Save upserts the user's snapshot.
func (r *GormSnapshotRepo) Save(ctx context.Context, userID, currency string, items []LineItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot payload: %w", err)
	}

	record := snapshotRecord{
		UserID:   userID,
		Currency: currency,
		Payload:  payload,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"currency", "payload", "updated_at"}),
		}).
		Create(&record).Error
}

// Load reads the user's snapshot. A missing row is not an error: a fresh
// user simply has an empty mirror.
func (r *GormSnapshotRepo) Load(ctx context.Context, userID string) ([]LineItem, string, error) {
	var record snapshotRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var items []LineItem
	if len(record.Payload) > 0 {
		if err := json.Unmarshal(record.Payload, &items); err != nil {
			return nil, "", fmt.Errorf("unmarshal snapshot payload: %w", err)
		}
	}
	return items, record.Currency, nil
}
