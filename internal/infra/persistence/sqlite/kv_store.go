package sqlite

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plantheon/internal/infra/persistence/model"
)

// kvStore wraps the kv_records table with get/put/delete over raw JSON
// payloads. Both the per-user bundle store and the session store sit on it.
type kvStore struct {
	db *gorm.DB
}

// errKVNotFound marks an absent or unreadable record; callers translate it
// to their own domain sentinel.
var errKVNotFound = errors.New("kv record not found")

func (s *kvStore) get(ctx context.Context, key string) (string, error) {
	var record model.KVRecordModel
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errKVNotFound
		}

		return "", errors.Wrapf(err, "failed to read record %q", key)
	}

	return record.Value, nil
}

// put upserts the record. Last writer wins; there is a single local client,
// so no merge or version check is needed.
func (s *kvStore) put(ctx context.Context, key, value string) error {
	record := model.KVRecordModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error

	return errors.Wrapf(err, "failed to write record %q", key)
}

// del is idempotent: deleting an absent key is not an error.
func (s *kvStore) del(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVRecordModel{}).Error

	return errors.Wrapf(err, "failed to delete record %q", key)
}
