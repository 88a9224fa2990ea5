package identity_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// memStore implementa los puertos de usuario y perfil en memoria, con transacciones por copia.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	profiles map[string]entity.Profile

	failProfileCreate error
	failLookup        error
	failStamp         error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*entity.User{}, profiles: map[string]entity.Profile{}}
}

var _ repository.UserRepository = (*memUsers)(nil)
var _ repository.ProfileRepository = (*memProfiles)(nil)

type memUsers struct{ s *memStore }
type memProfiles struct{ s *memStore }

func (s *memStore) Users() *memUsers       { return &memUsers{s} }
func (s *memStore) Profiles() *memProfiles { return &memProfiles{s} }

func (s *memStore) RunIdentity(ctx context.Context, fn func(repository.UserRepository, repository.ProfileRepository) error) error {
	s.mu.Lock()
	usersSnap := make(map[string]*entity.User, len(s.users))
	for k, v := range s.users {
		cp := *v
		usersSnap[k] = &cp
	}
	profSnap := make(map[string]entity.Profile, len(s.profiles))
	for k, v := range s.profiles {
		profSnap[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.Users(), s.Profiles()); err != nil {
		s.mu.Lock()
		s.users, s.profiles = usersSnap, profSnap
		s.mu.Unlock()
		return err
	}
	return nil
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.users {
		if ex.Email == u.Email {
			return domain.FieldErr("email", domain.ErrDuplicateEmail)
		}
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	cp.Profile = nil
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failLookup != nil {
		return nil, r.s.failLookup
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failLookup != nil {
		return nil, r.s.failLookup
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *memUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ex, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	ex.FirstName, ex.LastName, ex.PhoneNumber, ex.Description = u.FirstName, u.LastName, u.PhoneNumber, u.Description
	ex.IsActive, ex.IsStaff = u.IsActive, u.IsStaff
	ex.UpdatedAt = time.Now()
	return nil
}

func (r *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ex, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	ex.PasswordHash = hash
	return nil
}

func (r *memUsers) SetPasswordResetRequest(_ context.Context, id string, at *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failStamp != nil {
		return r.s.failStamp
	}
	ex, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	ex.LastPasswordResetRequest = at
	return nil
}

func (r *memUsers) MarkSSOAuthenticated(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ex, ok := r.s.users[id]; ok {
		ex.IsSSOAuthenticated = true
	}
	return nil
}

func (r *memUsers) ListByType(_ context.Context, t entity.UserType, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if t == "" || u.Type == t {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUsers) ListAdministrators(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.IsActive && (u.IsSuperuser || u.Type == entity.UserTypeSuperAdmin) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	delete(r.s.profiles, id)
	return nil
}

func (r *memProfiles) Create(_ context.Context, userID string, p entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failProfileCreate != nil {
		return r.s.failProfileCreate
	}
	if _, ok := r.s.users[userID]; !ok {
		return errors.New("fk violation")
	}
	r.s.profiles[userID] = p
	return nil
}

func (r *memProfiles) GetByUserID(_ context.Context, userID string, t entity.UserType) (entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok || p.Kind() != entity.ExpectedProfileKind(t) {
		return nil, nil
	}
	return p, nil
}

func (r *memProfiles) Update(_ context.Context, userID string, p entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[userID]; !ok {
		return domain.ErrNotFound
	}
	r.s.profiles[userID] = p
	return nil
}

// recordingNotifier guarda las notificaciones enviadas; err simula fallo de envío.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (n *recordingNotifier) Notify(_ context.Context, to []string, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{to: append([]string(nil), to...), subject: subject, body: body})
	return n.err
}
