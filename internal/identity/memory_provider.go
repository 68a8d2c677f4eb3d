package identity

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"pharmadir/internal/model"
)

// MemoryProvider keeps accounts in process. It implements both Provider and
// Client and backs the memory store driver for local runs.
type MemoryProvider struct {
	mu         sync.Mutex
	linkBase   string
	users      map[string]*model.User
	passwords  map[string]string
	resetCodes map[string]string
}

var (
	_ Provider = (*MemoryProvider)(nil)
	_ Client   = (*MemoryProvider)(nil)
)

// NewMemoryProvider creates an empty provider. Links point at linkBase.
func NewMemoryProvider(linkBase string) *MemoryProvider {
	return &MemoryProvider{
		linkBase:   linkBase,
		users:      map[string]*model.User{},
		passwords:  map[string]string{},
		resetCodes: map[string]string{},
	}
}

func (p *MemoryProvider) findByEmail(email string) *model.User {
	for _, u := range p.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (p *MemoryProvider) CreateUser(_ context.Context, email, password, displayName string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findByEmail(email) != nil {
		return nil, ErrEmailExists
	}
	u := &model.User{UID: uuid.New().String(), Email: email, DisplayName: displayName}
	p.users[u.UID] = u
	p.passwords[u.UID] = password
	copied := *u
	return &copied, nil
}

func (p *MemoryProvider) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := p.findByEmail(email)
	if u == nil {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (p *MemoryProvider) GetUser(_ context.Context, uid string) (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[uid]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (p *MemoryProvider) UpdatePassword(_ context.Context, uid, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[uid]; !ok {
		return ErrUserNotFound
	}
	p.passwords[uid] = password
	return nil
}

func (p *MemoryProvider) DeleteUser(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[uid]; !ok {
		return ErrUserNotFound
	}
	delete(p.users, uid)
	delete(p.passwords, uid)
	return nil
}

func (p *MemoryProvider) EmailVerificationLink(_ context.Context, email string) (string, error) {
	return p.link("verifyEmail", uuid.New().String()), nil
}

// PasswordResetLink issues a single-use code redeemable with VerifyPasswordResetCode.
func (p *MemoryProvider) PasswordResetLink(_ context.Context, email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findByEmail(email) == nil {
		return "", ErrUserNotFound
	}
	code := uuid.New().String()
	p.resetCodes[code] = email
	return p.link("resetPassword", code), nil
}

func (p *MemoryProvider) link(mode, code string) string {
	q := url.Values{}
	q.Set("mode", mode)
	q.Set("oobCode", code)
	return fmt.Sprintf("%s?%s", p.linkBase, q.Encode())
}

func (p *MemoryProvider) SignInWithEmailAndPassword(_ context.Context, email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u := p.findByEmail(email)
	if u == nil || p.passwords[u.UID] != password {
		return "", ErrInvalidCredentials
	}
	return u.UID, nil
}

func (p *MemoryProvider) VerifyPasswordResetCode(_ context.Context, code string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	email, ok := p.resetCodes[code]
	if !ok {
		return "", ErrInvalidResetCode
	}
	delete(p.resetCodes, code)
	return email, nil
}
