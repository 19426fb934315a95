package models

// UserRequest - модель для регистрации и аутентификации пользователя, приходит извне
type UserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// UserData - модель пользователя из хранилища
type UserData struct {
	UserID       string
	Login        string
	Email        string
	PasswordHash string
	IsAdmin      bool
}
