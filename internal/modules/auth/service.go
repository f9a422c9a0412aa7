package auth

import (
	"context"
	"errors"

	"petcare/internal/domain"
	jwtsvc "petcare/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type ownerRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Owner, error)
}

type Service struct {
	owners ownerRepo
	jwt    *jwtsvc.Service
}

func NewService(owners ownerRepo, jwt *jwtsvc.Service) *Service {
	return &Service{owners: owners, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Owner, error) {
	owner, err := s.owners.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(owner.ID)
	if err != nil {
		return "", nil, err
	}
	return token, owner, nil
}
