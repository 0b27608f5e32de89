package book_session

import (
	"time"
)

// Request модель запроса на бронирование сессии
type Request struct {
	StudentID       int64     // ID студента (инициатор)
	MentorID        int64     // ID ментора
	Title           string    // Тема сессии
	ScheduledStart  time.Time // Запрошенное время начала (любая зона, приводится к UTC)
	DurationMinutes int       // Длительность в минутах (0 = длительность слота по умолчанию)
	MeetingLink     *string   // Ссылка на встречу (опционально)
	Notes           *string   // Заметки (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	ID              int64     // ID созданной сессии
	StudentID       int64     // ID студента
	MentorID        int64     // ID ментора
	Title           string    // Тема сессии
	ScheduledStart  time.Time // Время начала, UTC
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус сессии

	MeetingLink *string // Ссылка на встречу
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
