package auth

import (
	"context"
	"testing"
	"time"

	"petcare/internal/domain"
	jwtsvc "petcare/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockOwnerRepo struct {
	mock.Mock
}

func (m *mockOwnerRepo) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockOwnerRepo)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "lan@example.vn").Return(&domain.Owner{
		ID: 7, Email: "lan@example.vn", PasswordHash: string(hash),
	}, nil)

	svc := NewService(repo, jwtsvc.New("test-secret", time.Hour))

	token, owner, err := svc.Login(context.Background(), "lan@example.vn", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), owner.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockOwnerRepo)
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	repo.On("GetByEmail", mock.Anything, "lan@example.vn").Return(&domain.Owner{
		ID: 7, Email: "lan@example.vn", PasswordHash: string(hash),
	}, nil)

	svc := NewService(repo, jwtsvc.New("test-secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "lan@example.vn", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockOwnerRepo)
	repo.On("GetByEmail", mock.Anything, "nobody@example.vn").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, jwtsvc.New("test-secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "nobody@example.vn", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
