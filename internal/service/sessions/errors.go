package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotCancellable возвращается при попытке отменить сессию в неотменяемом статусе
	ErrNotCancellable = errors.New("session status does not allow cancellation")

	// ErrCancelWindowPassed возвращается, когда окно отмены для роли закрыто
	ErrCancelWindowPassed = errors.New("cancellation window has passed")

	// ErrNotStartable возвращается при попытке начать сессию в недопустимом статусе
	ErrNotStartable = errors.New("session status does not allow start")

	// ErrTooEarlyToStart возвращается, когда окно раннего начала еще не открылось
	ErrTooEarlyToStart = errors.New("too early to start the session")

	// ErrNotCompleted возвращается при попытке прикрепить оценку к незавершенной сессии
	ErrNotCompleted = errors.New("session is not completed")

	// ErrConflict возвращается при проигрыше конкурентного условного обновления;
	// вызывающей стороне следует перечитать сессию
	ErrConflict = errors.New("session changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
