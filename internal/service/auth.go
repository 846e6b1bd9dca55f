package service

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
	"github.com/pulsefeed-dev/pulsefeed/internal/jwt"
)

type AuthService interface {
	Register(displayName, email, password string) (domain.User, string, error)
	Login(email, password string) (domain.User, string, error)
	UserById(id uuid.UUID) (domain.User, error)
}

type AuthStorage interface {
	CreateUser(displayName, email, passHash string) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
	UserById(id uuid.UUID) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     jwt.JwtService
}

func NewAuth(storage AuthStorage, jwt jwt.JwtService) AuthService {
	return &Auth{storage, jwt}
}

func (s *Auth) Register(displayName, email, password string) (domain.User, string, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.storage.CreateUser(displayName, email, string(passHash))
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Auth) Login(email, password string) (domain.User, string, error) {
	invalid := &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}

	user, err := s.storage.UserByEmail(email)
	if err != nil {
		// do not reveal whether the account exists
		return domain.User{}, "", invalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)) != nil {
		return domain.User{}, "", invalid
	}

	token, err := s.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *Auth) UserById(id uuid.UUID) (domain.User, error) {
	return s.storage.UserById(id)
}
