package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
)

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

type IdentityService interface {
	RegisterUser(ctx context.Context, user models.UserRequest) error
	AuthenticateUser(ctx context.Context, user models.UserRequest) (bool, error)
	GenerateJWT(ctx context.Context, username string) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth *jwtauth.JWTAuth
	Storage storage.IStorage
}

// Создание сервиса
func NewIdentity(cfg config.Config, storage storage.IStorage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, Storage: storage}
}

// Регистрация нового пользователя.
func (i *Identity) RegisterUser(ctx context.Context, user models.UserRequest) error {
	logger.Info("Register user:", user.Login)

	if _, err := i.Storage.GetUser(ctx, user.Login); err == nil {
		logger.Warn("User already exist")
		return ErrUserAlreadyExists
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error generating password hash", err)
		return err
	}

	err = i.Storage.AddUser(ctx, user.Login, user.Email, string(hashedPassword))
	if err != nil {
		logger.Error("Error registering user", user.Login, err)
		return err
	}
	return nil
}

// Аутентификация пользователя
func (i *Identity) AuthenticateUser(ctx context.Context, user models.UserRequest) (bool, error) {
	logger.Info("Authenticate user", user.Login)

	data, err := i.Storage.GetUser(ctx, user.Login)
	if err != nil {
		logger.Error("Error getting user", err)
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(data.PasswordHash), []byte(user.Password)); err != nil {
		logger.Warn("Invalid password", user.Login)
		return false, nil
	}

	logger.Info("User authenticated", user.Login)
	return true, nil
}

// Создание строки JWT токена. Признак администратора попадает в claims
// и проверяется middleware на административных маршрутах.
func (i *Identity) GenerateJWT(ctx context.Context, username string) (string, error) {
	user, err := i.Storage.GetUser(ctx, username)
	if err != nil {
		return "", err
	}

	expirationTime := time.Now().Add(TokenExpirationTime)
	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"username": username,
		"admin":    user.IsAdmin,
		"exp":      expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
