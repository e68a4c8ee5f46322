package db

import (
	"context"
	"errors"
	"testing"

	"github.com/tourbay/storefront/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatalf("expected error for missing DSN")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	client := &Client{conn: conn}

	type row struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}
	if err := conn.AutoMigrate(&row{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	boom := errors.New("boom")
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&row{Name: "pending"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	if err := conn.Model(&row{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d rows", count)
	}
}

func TestWithTxCommits(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	client := &Client{conn: conn}

	type row struct {
		ID   uint `gorm:"primaryKey"`
		Name string
	}
	if err := conn.AutoMigrate(&row{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&row{Name: "kept"}).Error
	}); err != nil {
		t.Fatalf("tx: %v", err)
	}

	var count int64
	if err := conn.Model(&row{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected committed row, found %d", count)
	}
}
