package impl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"plantheon/internal/domain/entity"
	"plantheon/internal/domain/repository"
	"plantheon/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errSaveFailed = errors.New("save failed")

// fakeCatalog serves a fixed pair of gardens and plans.
type fakeCatalog struct{}

var catalogGardens = []entity.Garden{
	{
		ID:             1,
		Name:           "Skyline Serenity",
		Type:           "Wellness Garden",
		Location:       "Downtown",
		OneTimePrice:   40,
		Rating:         4.9,
		AvailableTimes: []string{"9:00 AM", "11:00 AM"},
	},
	{
		ID:               2,
		Name:             "Sunset Lounge",
		Type:             "Social Garden",
		Location:         "Financial District",
		OneTimePrice:     60,
		Rating:           4.8,
		SubscriptionOnly: true,
		AvailableTimes:   []string{"4:00 PM", "6:00 PM"},
	},
}

var catalogPlans = []entity.Plan{
	{ID: "basic", Name: "Basic", MonthlyPrice: 49, AnnualPrice: 470},
	{ID: "premium", Name: "Premium", MonthlyPrice: 99, AnnualPrice: 950},
}

func (fakeCatalog) Gardens() []entity.Garden {
	return append([]entity.Garden(nil), catalogGardens...)
}

func (fakeCatalog) GardenByID(id int) (*entity.Garden, error) {
	for _, garden := range catalogGardens {
		if garden.ID == id {
			clone := garden

			return &clone, nil
		}
	}

	return nil, repository.ErrGardenNotFound
}

func (fakeCatalog) Plans() []entity.Plan {
	return append([]entity.Plan(nil), catalogPlans...)
}

func (fakeCatalog) PlanByID(id string) (*entity.Plan, error) {
	for _, plan := range catalogPlans {
		if plan.ID == id {
			clone := plan

			return &clone, nil
		}
	}

	return nil, repository.ErrPlanNotFound
}

// fakeStore is an in-memory stand-in for the persistence layer. Bundles are
// copied through JSON on every read and write, so tests catch code that
// mutates shared state instead of persisting it.
type fakeStore struct {
	users    map[string]*entity.User
	userData map[string]string
	session  *entity.User

	failNextSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*entity.User),
		userData: make(map[string]string),
	}
}

func (s *fakeStore) putUserData(email string, data *entity.UserData) {
	raw, _ := json.Marshal(data)
	s.userData[email] = string(raw)
}

func (s *fakeStore) getUserData(email string) *entity.UserData {
	raw, ok := s.userData[email]
	if !ok {
		return nil
	}
	var data entity.UserData
	_ = json.Unmarshal([]byte(raw), &data)

	return &data
}

type fakeTxManager struct {
	store *fakeStore
}

func newFakeTxManager(store *fakeStore) repository.TransactionManager {
	return &fakeTxManager{store: store}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{store: m.store})
}

type fakeRepoFactory struct {
	store *fakeStore
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeRepoFactory) UserDataRepo() repository.UserDataRepository {
	return &fakeUserDataRepo{store: f.store}
}

func (f *fakeRepoFactory) SessionRepo() repository.SessionRepository {
	return &fakeSessionRepo{store: f.store}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := r.store.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	clone := *user
	r.store.users[user.Email] = &clone

	return nil
}

type fakeUserDataRepo struct {
	store *fakeStore
}

func (r *fakeUserDataRepo) Load(_ context.Context, email string) (*entity.UserData, error) {
	data := r.store.getUserData(email)
	if data == nil {
		return nil, repository.ErrUserDataNotFound
	}

	return data, nil
}

func (r *fakeUserDataRepo) Save(_ context.Context, email string, data *entity.UserData) error {
	if r.store.failNextSave {
		r.store.failNextSave = false

		return errSaveFailed
	}
	r.store.putUserData(email, data)

	return nil
}

func (r *fakeUserDataRepo) Clear(_ context.Context, email string) error {
	delete(r.store.userData, email)

	return nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Load(_ context.Context) (*entity.User, error) {
	if r.store.session == nil {
		return nil, repository.ErrSessionNotFound
	}
	clone := *r.store.session

	return &clone, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, user *entity.User) error {
	clone := *user
	r.store.session = &clone

	return nil
}

func (r *fakeSessionRepo) Clear(_ context.Context) error {
	r.store.session = nil

	return nil
}

// stubOAuth drives the auth service without a network.
type stubOAuth struct {
	authURL      string
	exchangeErr  error
	fetchErr     error
	profile      *service.OAuthUser
	exchangedFor string
}

func (s *stubOAuth) AuthorizationURL() string {
	return s.authURL
}

func (s *stubOAuth) ExchangeCode(_ context.Context, code string) (string, error) {
	s.exchangedFor = code
	if s.exchangeErr != nil {
		return "", s.exchangeErr
	}

	return "access-token", nil
}

func (s *stubOAuth) FetchUser(context.Context, string) (*service.OAuthUser, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	return s.profile, nil
}
