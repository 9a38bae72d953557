package catalog

import (
	"strings"

	"github.com/Freeeeeet/schedule_builder/internal/model"
)

// ParseCourses разбирает "MATH 51, PHYS 32" в список курсов
func ParseCourses(text string) []string {
	var out []string
	for _, c := range strings.Split(text, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// FilterByCourses оставляет секции нужных курсов. Секция подходит, если
// "Course Section" содержит "<курс>-" без учёта регистра ("MATH 51" -> "MATH 51-3").
// Если ничего не нашлось, возвращаются все секции.
func FilterByCourses(sections []model.CourseSection, courses []string) []model.CourseSection {
	patterns := make([]string, 0, len(courses))
	for _, c := range courses {
		c = strings.TrimSpace(c)
		if c != "" {
			patterns = append(patterns, strings.ToLower(c)+"-")
		}
	}
	if len(patterns) == 0 {
		return sections
	}

	var matched []model.CourseSection
	for _, s := range sections {
		name := strings.ToLower(s.CourseSection)
		for _, p := range patterns {
			if strings.Contains(name, p) {
				matched = append(matched, s)
				break
			}
		}
	}

	if len(matched) == 0 {
		return sections
	}
	return matched
}
