package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда действие запрещено правилами домена
	// (недостаточно прав либо отказ ворот пересдачи). Это ожидаемый исход, а не сбой.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния, в том числе для проигравшего
	// в гонке одновременных отправок ответа на один и тот же вопрос.
	ErrConflict = errors.New("resource state conflict")

	// ErrStoreUnavailable используется при сбоях ввода-вывода хранилища.
	// Операции записи никогда не ретраятся молча, чтобы не плодить дубликаты событий.
	ErrStoreUnavailable = errors.New("store unavailable")
)
