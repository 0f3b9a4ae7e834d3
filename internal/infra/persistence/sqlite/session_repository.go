package sqlite

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"plantheon/internal/domain/entity"
	"plantheon/internal/domain/repository"
)

// sessionKey is fixed: the service fronts a single local client, so at most
// one session record exists at a time.
const sessionKey = "session:user"

// sessionRepository persists the signed-in user in the kv_records table so
// the session survives restarts.
type sessionRepository struct {
	kv kvStore
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{kv: kvStore{db: db}}
}

// Load returns the persisted session user. A malformed payload is treated
// as no session.
func (repo *sessionRepository) Load(ctx context.Context) (*entity.User, error) {
	raw, err := repo.kv.get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, errKVNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, repository.ErrSessionNotFound
	}
	if user.Email == "" {
		return nil, repository.ErrSessionNotFound
	}

	return &user, nil
}

// Save stores the session user, replacing any previous record.
func (repo *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "failed to encode session user")
	}

	return repo.kv.put(ctx, sessionKey, string(raw))
}

// Clear removes the persisted session record.
func (repo *sessionRepository) Clear(ctx context.Context) error {
	return repo.kv.del(ctx, sessionKey)
}
