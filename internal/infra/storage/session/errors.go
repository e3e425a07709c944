package session

import "errors"

var (
	// ErrSessionNotFound возвращается, если сессии нет или истек ее TTL
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrStore возвращается при ошибках хранилища сессий
	ErrStore = errors.New("session.store: storage error")

	// ErrEncode возвращается при ошибке (де)сериализации сессии
	ErrEncode = errors.New("session.store: failed to encode session")
)
