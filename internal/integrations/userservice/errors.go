package userservice

import "errors"

var (
	// ErrInvalidCredentials возвращается, когда UserService отклонил email или пароль
	ErrInvalidCredentials = errors.New("userservice client: invalid credentials")

	// ErrUserExists возвращается при регистрации уже существующего email
	ErrUserExists = errors.New("userservice client: user already exists")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
