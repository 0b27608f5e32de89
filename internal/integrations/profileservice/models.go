package profileservice

// User модель пользователя из ProfileService
type User struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"` // student | mentor | admin
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
}

// IsMentor возвращает true, если пользователь зарегистрирован как ментор
func (u *User) IsMentor() bool {
	return u.Role == "mentor"
}

// IsStudent возвращает true, если пользователь зарегистрирован как студент
func (u *User) IsStudent() bool {
	return u.Role == "student"
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
