package services

import (
	"context"
	"strconv"
	"sync"

	"profile-api/internal/models"
	"profile-api/internal/repositories"
)

// fakeProfileRepository is an in-memory repositories.ProfileRepository that
// enforces email uniqueness and never reuses ids
type fakeProfileRepository struct {
	mu       sync.Mutex
	profiles map[uint]models.Profile
	nextID   uint

	// failWith, when set, is returned by every call
	failWith error
	// panicOn names an operation that panics
	panicOn string
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{
		profiles: make(map[uint]models.Profile),
		nextID:   1,
	}
}

func (r *fakeProfileRepository) check(op string) error {
	if r.panicOn == op {
		panic("fake repository panic in " + op)
	}
	return r.failWith
}

func (r *fakeProfileRepository) emailTaken(email string, except uint) bool {
	for id, p := range r.profiles {
		if p.Email == email && id != except {
			return true
		}
	}
	return false
}

func (r *fakeProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("create"); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return repositories.ValidationError("profile", "", err)
	}
	if r.emailTaken(profile.Email, 0) {
		return repositories.DuplicateError("create", "profile", "email", nil)
	}

	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("get"); err != nil {
		return nil, err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, repositories.NotFoundError("profile", strconv.FormatUint(uint64(id), 10))
	}
	return &p, nil
}

func (r *fakeProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("get_by_email"); err != nil {
		return nil, err
	}
	for _, p := range r.profiles {
		if p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, repositories.NotFoundError("profile", email)
}

func (r *fakeProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("update"); err != nil {
		return err
	}
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.NotFoundError("profile", strconv.FormatUint(uint64(profile.ID), 10))
	}
	if r.emailTaken(profile.Email, profile.ID) {
		return repositories.DuplicateError("update", "profile", "email", nil)
	}
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("delete"); err != nil {
		return err
	}
	if _, ok := r.profiles[id]; !ok {
		return repositories.NotFoundError("profile", strconv.FormatUint(uint64(id), 10))
	}
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check("list"); err != nil {
		return nil, err
	}
	out := make([]*models.Profile, 0, len(r.profiles))
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.profiles[id]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), r.failWith
}

func (r *fakeProfileRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[id]
	return ok, r.failWith
}

func (r *fakeProfileRepository) snapshot() map[uint]models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint]models.Profile, len(r.profiles))
	for k, v := range r.profiles {
		out[k] = v
	}
	return out
}

func (r *fakeProfileRepository) restore(s map[uint]models.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = s
}

// fakeTransactionManager restores the repository snapshot on error or panic
type fakeTransactionManager struct {
	repo      *fakeProfileRepository
	commits   int
	rollbacks int
	beginErr  error
}

func (tm *fakeTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tm.beginErr != nil {
		return tm.beginErr
	}

	saved := tm.repo.snapshot()
	defer func() {
		if r := recover(); r != nil {
			tm.repo.restore(saved)
			tm.rollbacks++
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		tm.repo.restore(saved)
		tm.rollbacks++
		return err
	}
	tm.commits++
	return nil
}
