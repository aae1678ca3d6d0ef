package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartstock/inventory_shop/internal/models"
)

// cartRecord is the row backing one session cart when Redis is not
// configured. Payload holds the serialized cart.
type cartRecord struct {
	SessionID string `gorm:"primaryKey;column:session_id"`
	Payload   []byte `gorm:"not null"`
}

func (cartRecord) TableName() string { return "session_carts" }

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&cartRecord{}); err != nil {
		return nil, fmt.Errorf("cartstore: migrate: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	var rec cartRecord
	err := s.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cartstore: get: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(rec.Payload, &cart); err != nil {
		return nil, fmt.Errorf("cartstore: decode: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (s *GormStore) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cartstore: encode: %w", err)
	}

	rec := cartRecord{SessionID: sessionID, Payload: data}
	err = s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("cartstore: save: %w", err)
	}
	return nil
}

func (s *GormStore) Clear(ctx context.Context, sessionID string) error {
	err := s.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&cartRecord{}).Error
	if err != nil {
		return fmt.Errorf("cartstore: clear: %w", err)
	}
	return nil
}
