package model

// CourseSection одна строка выгрузки каталога курсов
type CourseSection struct {
	CourseSection   string `json:"course_section"`
	Instructors     string `json:"instructors"`
	Status          string `json:"status"`
	EnrolledCap     string `json:"enrolled_capacity"`
	MeetingPatterns string `json:"meeting_patterns"`
	Locations       string `json:"locations"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
}

// SectionChoice секция курса, выбранная AI при первом проходе.
// ClassNumber общий у всех секций одного курса.
type SectionChoice struct {
	ClassNumber   string `json:"class number"`
	CourseSection string `json:"course section"`
	Teacher       string `json:"teacher"`
	Time          string `json:"time"`
}
