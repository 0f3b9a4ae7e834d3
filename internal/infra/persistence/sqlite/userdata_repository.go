package sqlite

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"plantheon/internal/domain/entity"
	"plantheon/internal/domain/repository"
)

const userDataKeyPrefix = "userData:"

// userDataRepository stores each user's full bundle as one JSON payload in
// the kv_records table.
type userDataRepository struct {
	kv kvStore
}

// NewUserDataRepository is the constructor for userDataRepository.
func NewUserDataRepository(db *gorm.DB) repository.UserDataRepository {
	return &userDataRepository{kv: kvStore{db: db}}
}

func userDataKey(email string) string {
	return userDataKeyPrefix + email
}

// Load returns the stored bundle. A payload that fails to parse is treated
// the same as an absent record; the caller reseeds a fresh bundle.
func (repo *userDataRepository) Load(ctx context.Context, email string) (*entity.UserData, error) {
	raw, err := repo.kv.get(ctx, userDataKey(email))
	if err != nil {
		if errors.Is(err, errKVNotFound) {
			return nil, repository.ErrUserDataNotFound
		}

		return nil, err
	}

	var data entity.UserData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, repository.ErrUserDataNotFound
	}

	return &data, nil
}

// Save overwrites the full bundle for the email.
func (repo *userDataRepository) Save(ctx context.Context, email string, data *entity.UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode user data")
	}

	return repo.kv.put(ctx, userDataKey(email), string(raw))
}

// Clear removes the bundle entirely.
func (repo *userDataRepository) Clear(ctx context.Context, email string) error {
	return repo.kv.del(ctx, userDataKey(email))
}
