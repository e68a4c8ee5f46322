package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// preferenceRecord mirrors the currency_preferences table.
type preferenceRecord struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Code      string    `gorm:"column:code"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (preferenceRecord) TableName() string {
	return "currency_preferences"
}

// GormPreferenceRepo persists each user's preferred display currency.
type GormPreferenceRepo struct {
	db          *gorm.DB
	defaultCode string
}

func NewGormPreferenceRepo(db *gorm.DB, defaultCode string) (*GormPreferenceRepo, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle is required")
	}
	if defaultCode == "" {
		defaultCode = "USD"
	}
	return &GormPreferenceRepo{db: db, defaultCode: strings.ToUpper(defaultCode)}, nil
}

// Get returns the user's preferred code, or the configured default when the
// user has never chosen one.
func (r *GormPreferenceRepo) Get(ctx context.Context, userID string) (string, error) {
	var record preferenceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.defaultCode, nil
	}
	if err != nil {
		return "", err
	}
	return strings.ToUpper(record.Code), nil
}

// Set upserts the user's preferred code.
func (r *GormPreferenceRepo) Set(ctx context.Context, userID, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q", code)
	}

	record := preferenceRecord{UserID: userID, Code: code}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "updated_at"}),
		}).
		Create(&record).Error
}
