package schedule

import "github.com/Freeeeeet/schedule_builder/internal/model"

// Conflict пара пересекающихся занятий внутри одного варианта
type Conflict struct {
	First         int    `json:"first"`
	Second        int    `json:"second"`
	FirstSummary  string `json:"first_summary"`
	SecondSummary string `json:"second_summary"`
}

// IsValid проверяет, что в расписании нет пересекающихся занятий
func IsValid(entries []model.MeetingEntry) bool {
	return isValid(entries, ModeDateTime)
}

func isValid(entries []model.MeetingEntry, mode Mode) bool {
	if len(entries) < 2 {
		return true
	}
	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			if entriesOverlap(entries[i], entries[j], mode) {
				return false
			}
		}
	}
	return true
}

// Conflicts возвращает все конфликтующие пары в порядке (i, j), i < j
func Conflicts(entries []model.MeetingEntry) []Conflict {
	return conflicts(entries, ModeDateTime)
}

func conflicts(entries []model.MeetingEntry, mode Mode) []Conflict {
	var out []Conflict
	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			if entriesOverlap(entries[i], entries[j], mode) {
				out = append(out, Conflict{
					First:         i,
					Second:        j,
					FirstSummary:  entries[i].Summary,
					SecondSummary: entries[j].Summary,
				})
			}
		}
	}
	return out
}
