package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/services"
)

// RegisterUserHandler — регистрация нового пользователя
func RegisterUserHandler(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user models.UserRequest
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		if err := i.RegisterUser(r.Context(), user); err != nil {
			if errors.Is(err, services.ErrUserAlreadyExists) {
				logger.Warn("Error register user", user.Login)
				http.Error(w, "login already exist", http.StatusConflict)
			} else {
				logger.Error("Error register user", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
			}
			return
		}

		// Генерация JWT токена для зарегистрированного пользователя
		token, err := i.GenerateJWT(r.Context(), user.Login)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		logger.Info("User registered and authenticated", user.Login)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	})
}

// AuthenticateUserHandle — аутентификация пользователя
func AuthenticateUserHandle(i services.IdentityService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user models.UserRequest
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		authenticated, err := i.AuthenticateUser(r.Context(), user)
		if err != nil || !authenticated {
			logger.Warn("Failed to authenticate user", user.Login)
			http.Error(w, "Invalid login or password", http.StatusUnauthorized)
			return
		}

		token, err := i.GenerateJWT(r.Context(), user.Login)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		logger.Info("User authenticated", user.Login)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	})
}
