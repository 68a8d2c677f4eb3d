package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pharmadir/internal/model"
)

// MockProvider is a mock implementation of identity.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateUser(ctx context.Context, email, password, displayName string) (*model.User, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProvider) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProvider) GetUser(ctx context.Context, uid string) (*model.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProvider) UpdatePassword(ctx context.Context, uid, password string) error {
	args := m.Called(ctx, uid, password)
	return args.Error(0)
}

func (m *MockProvider) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockProvider) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockIdentityClient is a mock implementation of identity.Client.
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) SignInWithEmailAndPassword(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityClient) VerifyPasswordResetCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// MockSender is a mock implementation of mail.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendVerificationEmail(ctx context.Context, to, link, name string) error {
	args := m.Called(ctx, to, link, name)
	return args.Error(0)
}

func (m *MockSender) SendPasswordResetEmail(ctx context.Context, to, link, name string) error {
	args := m.Called(ctx, to, link, name)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, uid string) (*model.Profile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) AddFavorite(ctx context.Context, uid, pharmacyID string) error {
	args := m.Called(ctx, uid, pharmacyID)
	return args.Error(0)
}

func (m *MockProfileRepository) RemoveFavorite(ctx context.Context, uid, pharmacyID string) error {
	args := m.Called(ctx, uid, pharmacyID)
	return args.Error(0)
}

// MockPharmacyRepository is a mock implementation of repository.PharmacyRepository.
type MockPharmacyRepository struct {
	mock.Mock
}

func (m *MockPharmacyRepository) Create(ctx context.Context, p *model.Pharmacy) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockPharmacyRepository) List(ctx context.Context) ([]model.Pharmacy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) FindByID(ctx context.Context, id string) (*model.Pharmacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) Update(ctx context.Context, id string, changes model.PharmacyChanges) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockPharmacyRepository) UpdateStatus(ctx context.Context, id string, status model.PharmacyStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPharmacyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Add(ctx context.Context, pharmacyID string, c *model.Comment) (string, error) {
	args := m.Called(ctx, pharmacyID, c)
	return args.String(0), args.Error(1)
}

func (m *MockCommentRepository) ListByPharmacy(ctx context.Context, pharmacyID string) ([]model.Comment, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, pharmacyID, commentID string) (*model.Comment, error) {
	args := m.Called(ctx, pharmacyID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, pharmacyID, commentID string) error {
	args := m.Called(ctx, pharmacyID, commentID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input model.RegisterInput) (*model.MessageResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input model.LoginInput) (*model.LoginResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) (*model.MessageResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResponse), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error) {
	args := m.Called(ctx, token, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MessageResponse), args.Error(1)
}

func (m *MockAuthService) ExtractEmailFromToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResolveUser(ctx context.Context, authHeader string) (*model.User, error) {
	args := m.Called(ctx, authHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
