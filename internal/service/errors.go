package service

import "errors"

var (
	// ErrRunNotFound генерация не найдена
	ErrRunNotFound = errors.New("schedule run not found")
	// ErrCandidateIndex номер варианта вне диапазона
	ErrCandidateIndex = errors.New("candidate index out of range")
	// ErrEmptySchedule нечего добавлять в календарь
	ErrEmptySchedule = errors.New("schedule has no meetings")
)
