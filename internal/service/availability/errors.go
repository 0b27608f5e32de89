package availability

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден в ProfileService
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrNotAMentor возвращается, когда пользователь не имеет роли ментора
	ErrNotAMentor = errors.New("user is not a mentor")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidAvailability возвращается при невалидном недельном расписании
	ErrInvalidAvailability = errors.New("invalid weekly availability")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
