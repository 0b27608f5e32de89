package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrStatusConflict возвращается, когда условное обновление не применилось:
	// статус сессии изменился конкурентно с момента чтения
	ErrStatusConflict = errors.New("session.repository: status changed concurrently")

	// ErrSlotTaken возвращается при нарушении уникальности (mentor_id, scheduled_start)
	// среди неотменённых сессий
	ErrSlotTaken = errors.New("session.repository: mentor slot already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
