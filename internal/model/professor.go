package model

import "time"

// ProfessorInfo сводка по преподавателю с RateMyProfessors
type ProfessorInfo struct {
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	Department            string   `json:"department"`
	School                string   `json:"school"`
	AvgRating             *float64 `json:"avgRating"`
	AvgDifficulty         *float64 `json:"avgDifficulty"`
	NumRatings            int      `json:"numRatings"`
	WouldTakeAgainPercent *float64 `json:"wouldTakeAgainPercent"`
}

// ProfessorComment один отзыв студента
type ProfessorComment struct {
	Comment string `json:"comment"`
	Tags    string `json:"tags"`
	Class   string `json:"class"`
	Date    string `json:"date"`
}

// ProfessorRating полная запись о преподавателе: сводка и отзывы
type ProfessorRating struct {
	ProfessorInfo ProfessorInfo      `json:"professor_info"`
	Comments      []ProfessorComment `json:"comments"`
	FetchedAt     time.Time          `json:"-"`
}
