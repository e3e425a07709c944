package events

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("events: failed to encode event")

	// ErrPublish возвращается, если брокер не принял событие
	ErrPublish = errors.New("events: failed to publish event")
)
