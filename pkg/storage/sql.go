package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/pastaprego-backend/pkg/db"
	"github.com/angelmondragon/pastaprego-backend/pkg/db/models"
)

// SQL stores records in the cart_records table through gorm.
type SQL struct {
	client *db.Client
	now    func() time.Time
}

func NewSQL(client *db.Client) (*SQL, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	return &SQL{client: client, now: time.Now}, nil
}

func (s *SQL) Load(ctx context.Context, name string) ([]byte, error) {
	var rec models.CartRecord
	err := s.client.DB().WithContext(ctx).Where("name = ?", name).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", name, err)
	}
	return []byte(rec.Payload), nil
}

func (s *SQL) Save(ctx context.Context, name string, payload []byte) error {
	rec := models.CartRecord{
		Name:      name,
		Payload:   string(payload),
		UpdatedAt: s.now().UTC(),
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("save record %q: %w", name, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *SQL) Close() error {
	return s.client.Close()
}
