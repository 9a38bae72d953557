package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"go.uber.org/zap"
)

// StudentStore хранилище студентов
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) error
}

type StudentService struct {
	students StudentStore
	logger   *zap.Logger
}

func NewStudentService(students StudentStore, logger *zap.Logger) *StudentService {
	return &StudentService{
		students: students,
		logger:   logger,
	}
}

// Register регистрирует или обновляет студента
func (s *StudentService) Register(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.Student, error) {
	// Проверяем существует ли студент
	existing, err := s.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing student: %w", err)
	}

	// Если студент уже существует, обновляем данные
	if existing != nil {
		existing.Username = username
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.LanguageCode = languageCode

		if err := s.students.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update student: %w", err)
		}

		s.logger.Info("Student updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)

		return existing, nil
	}

	student := &model.Student{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("New student registered",
		zap.Int64("student_id", student.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return student, nil
}

// GetByTelegramID получает студента по Telegram ID
func (s *StudentService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error) {
	return s.students.GetByTelegramID(ctx, telegramID)
}

// SavePreferences запоминает предпочтения для следующих генераций
func (s *StudentService) SavePreferences(ctx context.Context, student *model.Student, teacherPreference, calendarName string) error {
	if teacherPreference != "" {
		student.TeacherPreference = teacherPreference
	}
	if calendarName != "" {
		student.CalendarName = calendarName
	}
	if err := s.students.Update(ctx, student); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
