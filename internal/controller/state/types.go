package state

import "time"

// UserState текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Шаги диалога /build
	StateBuildQuarter           UserState = "build_quarter"
	StateBuildCourses           UserState = "build_courses"
	StateBuildTeacherPreference UserState = "build_teacher_preference"
	StateBuildCount             UserState = "build_count"

	// Ожидание имени календаря для /calendar
	StateCalendarName UserState = "calendar_name"
)

// Ключи временных данных диалога
const (
	KeyQuarter           = "quarter"
	KeyCourses           = "courses"
	KeyTeacherPreference = "teacher_preference"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{}
	UpdatedAt time.Time
}
