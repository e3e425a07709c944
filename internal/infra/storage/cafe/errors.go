package cafe

import "errors"

var (
	// ErrCafeNotFound возвращается, когда кафе не найдено
	ErrCafeNotFound = errors.New("cafe.repository: cafe not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cafe.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cafe.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cafe.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации вложенных полей
	ErrEncode = errors.New("cafe.repository: failed to encode nested fields")
)
