package book_session

import "errors"

var (
	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("book_session: student not found")

	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("book_session: mentor not found")

	// ErrNotAMentor возвращается, когда пользователь не имеет роли ментора
	ErrNotAMentor = errors.New("book_session: user is not a mentor")

	// ErrStartInPast возвращается, когда запрошенное время начала уже прошло
	ErrStartInPast = errors.New("book_session: requested start is in the past")

	// ErrStartNotBookable возвращается, когда запрошенное время не входит
	// в доступные слоты ментора на эту дату
	ErrStartNotBookable = errors.New("book_session: requested start is not a bookable slot")

	// ErrSlotTaken возвращается, когда слот ментора уже занят другой сессией
	ErrSlotTaken = errors.New("book_session: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_session: internal error")
)
