package resolve_slots

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("resolve_slots: mentor not found")

	// ErrNotAMentor возвращается, когда пользователь не имеет роли ментора
	ErrNotAMentor = errors.New("resolve_slots: user is not a mentor")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_slots: internal error")
)
