package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
	err    error // if set, every call returns it
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) emailTaken(email string, exceptID int64) bool {
	for id, u := range r.users {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.emailTaken(user.Email, 0) {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

// ---------------------------------------------------------------------------
// In-memory address repository
// ---------------------------------------------------------------------------

type stubAddressRepo struct {
	mu        sync.Mutex
	nextID    int64
	addresses map[int64]*domain.Address
	creates   int
	updates   int
}

func newStubAddressRepo() *stubAddressRepo {
	return &stubAddressRepo{addresses: make(map[int64]*domain.Address)}
}

func (r *stubAddressRepo) Create(_ context.Context, a *domain.Address) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.nextID++
	created := *a
	created.ID = r.nextID
	stored := created
	r.addresses[created.ID] = &stored
	return &created, nil
}

func (r *stubAddressRepo) FindByID(_ context.Context, id int64) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAddressRepo) Update(_ context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[a.ID]; !ok {
		return domain.ErrAddressNotFound
	}
	r.updates++
	clone := *a
	r.addresses[a.ID] = &clone
	return nil
}

func (r *stubAddressRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(r.addresses, id)
	return nil
}

func (r *stubAddressRepo) sorted(filter func(*domain.Address) bool) []*domain.Address {
	var out []*domain.Address
	for _, a := range r.addresses {
		if filter(a) {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubAddressRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.Address, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(*domain.Address) bool { return true })
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubAddressRepo) ListByOwner(_ context.Context, ownerID int64, page ports.PageRequest) ([]*domain.Address, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(a *domain.Address) bool { return a.OwnerUserID == ownerID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubAddressRepo) DeleteByOwner(_ context.Context, ownerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.addresses {
		if a.OwnerUserID == ownerID {
			delete(r.addresses, id)
			n++
		}
	}
	return n, nil
}

func paginate[T any](all []T, page ports.PageRequest) []T {
	skip := int(page.Skip())
	if skip >= len(all) {
		return []T{}
	}
	end := skip + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end]
}

// ---------------------------------------------------------------------------
// Postal resolver and revocation stubs
// ---------------------------------------------------------------------------

type stubResolver struct {
	mu      sync.Mutex
	records map[string]*domain.PostalRecord
	err     error
	calls   int
}

func newStubResolver() *stubResolver {
	return &stubResolver{records: map[string]*domain.PostalRecord{
		"70160900": {
			ZipCode:      "70160-900",
			Street:       "Praça dos Três Poderes",
			Neighborhood: "Zona Cívico-Administrativa",
			City:         "Brasília",
			State:        "DF",
		},
		"01001000": {
			ZipCode:      "01001-000",
			Street:       "Praça da Sé",
			Complement:   "lado ímpar",
			Neighborhood: "Sé",
			City:         "São Paulo",
			State:        "SP",
		},
	}}
}

func (r *stubResolver) Resolve(_ context.Context, zipCode string) (*domain.PostalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[zipCode]
	if !ok {
		return nil, domain.ErrPostalRejected
	}
	clone := *rec
	return &clone, nil
}

type revocation struct {
	subject string
	at      time.Time
}

type stubRevocations struct {
	mu      sync.Mutex
	revoked []revocation
	err     error
}

func (r *stubRevocations) RevokeSubject(_ context.Context, subject string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, revocation{subject: subject, at: at})
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, subject string, issuedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.revoked {
		if rv.subject == subject && issuedAt.Before(rv.at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRevocations) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.revoked))
	for i, rv := range r.revoked {
		out[i] = rv.subject
	}
	return out
}
