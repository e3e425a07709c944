package userservice

import "github.com/m04kA/CafeBookingService/internal/domain"

// LoginRequest тело запроса авторизации в UserService
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest тело запроса регистрации в UserService
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// User модель пользователя из UserService
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar string  `json:"avatar"`
	Phone  *string `json:"phone,omitempty"`
}

// ToDomain конвертирует ответ сервиса в domain модель
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Phone:  u.Phone,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
