package model

import "time"

// Student пользователь Telegram-бота
type Student struct {
	ID                int64     `json:"id"`
	TelegramID        int64     `json:"telegram_id"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	LanguageCode      string    `json:"language_code"`
	CalendarName      string    `json:"calendar_name"` // календарь для экспорта по умолчанию
	TeacherPreference string    `json:"teacher_preference"`
	CreatedAt         time.Time `json:"created_at"`
}
