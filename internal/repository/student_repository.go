package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(db base.DB) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(db)}
}

const studentColumns = `id, telegram_id, username, first_name, last_name, language_code, calendar_name, teacher_preference, created_at`

func scanStudent(row interface{ Scan(dest ...any) error }) (*model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.ID,
		&s.TelegramID,
		&s.Username,
		&s.FirstName,
		&s.LastName,
		&s.LanguageCode,
		&s.CalendarName,
		&s.TeacherPreference,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	query := `
		INSERT INTO students (telegram_id, username, first_name, last_name, language_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, calendar_name, teacher_preference, created_at
	`

	err := r.QueryRow(
		ctx, query,
		s.TelegramID,
		s.Username,
		s.FirstName,
		s.LastName,
		s.LanguageCode,
	).Scan(&s.ID, &s.CalendarName, &s.TeacherPreference, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByTelegramID получает студента по Telegram ID
func (r *StudentRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE telegram_id = $1`

	s, err := scanStudent(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Студент не найден
		}
		return nil, fmt.Errorf("get student by telegram id: %w", err)
	}

	return s, nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	s, err := scanStudent(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return s, nil
}

// Update обновляет профиль и настройки студента
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	query := `
		UPDATE students
		SET username = $1, first_name = $2, last_name = $3, language_code = $4, calendar_name = $5, teacher_preference = $6
		WHERE id = $7
	`

	affected, err := r.ExecAffected(
		ctx, query,
		s.Username,
		s.FirstName,
		s.LastName,
		s.LanguageCode,
		s.CalendarName,
		s.TeacherPreference,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("student not found")
	}

	return nil
}
