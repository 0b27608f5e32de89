package resolve_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MentorID int64     // ID ментора
	Date     time.Time // Дата, на которую запрашиваются слоты (UTC)
}

// Slot доступный для бронирования слот
type Slot struct {
	StartTime string    // Время начала "HH:MM"
	Start     time.Time // Полный момент начала, UTC
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MentorID int64
	Date     time.Time
	Slots    []Slot
}
