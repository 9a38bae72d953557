package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Freeeeeet/schedule_builder/internal/model"
)

// sampleRows сколько строк каталога попадает в первый промпт
const sampleRows = 20

var (
	sectionsInference = Inference{MaxTokens: 1467, Temperature: 0.9}
	scheduleInference = Inference{MaxTokens: 2000, Temperature: 0.5}
)

const sectionsPrompt = `
You are an expert academic advisor. Extract course sections and professor information from the data.

COURSE DATA:
%s

MY PREFERENCES:
- Required courses: %s

TASK:
Find all course sections for the required courses and extract professor information.

OUTPUT FORMAT (JSON array only):
[
    {"class number": "1", "course section": "MATH 51-1", "teacher": "Professor Name", "time": "MWF 1:00-2:05 pm"},
    {"class number": "1", "course section": "MATH 51-2", "teacher": "Another Professor", "time": "TTH 8:00-12:10pm"}
]

The "class number" indicates what class it is. All course sections of the same course share the same class number.
Respond with JSON ONLY - NO OTHER TEXT.
`

const schedulePrompt = `
You are an academic advisor creating course schedules.

STUDENT'S TEACHER PREFERENCES: %q
%s
AVAILABLE COURSE SECTIONS AND PROFESSORS:
%s

ORIGINAL DATA WITH DATES AND TIMES:
%s

TASK:
Create %d different course schedules. For each schedule, also provide pros and cons.

For each schedule:
1. For each course (by class_number), pick ONE section with the best professor matching the preferences
2. Use Start Date for the first class meeting
3. Parse Meeting Patterns to get days and times
4. Use End Date for the semester end
5. Provide brief pros and cons based on professor quality, schedule convenience, time preferences

OUTPUT FORMAT (JSON array with schedule and analysis):
[
  {
    "schedule": [
      {"summary": "MATH 51-3", "location": "Daly Science 300", "description": "Schaeffer", "start": "2025-09-22T13:00:00", "end": "2025-09-22T14:05:00", "days_of_week": ["MO","WE","FR"], "end_sem": "2025-12-12"},
      {"summary": "PHYS 32-2", "location": "SCDI 1308", "description": "Williams", "start": "2025-09-23T08:00:00", "end": "2025-09-23T09:05:00", "days_of_week": ["TU","TH"], "end_sem": "2025-12-12"}
    ],
    "pros": ["High-rated professors", "Morning classes", "No Friday classes"],
    "cons": ["Early start time", "Classes on MWF only"]
  }
]

OUTPUT ONLY THE JSON ARRAY - NO OTHER TEXT.
`

// promptSection секция вместе с данными о преподавателе для второго промпта
type promptSection struct {
	CourseSection string                 `json:"course_section"`
	Teacher       string                 `json:"teacher"`
	Time          string                 `json:"time"`
	ClassNumber   string                 `json:"class_number"`
	ProfInfo      *model.ProfessorRating `json:"prof_info"`
}

func buildSectionsPrompt(courses []string, sections []model.CourseSection) string {
	required := strings.Join(courses, ", ")
	if required == "" {
		required = "None specified"
	}
	return fmt.Sprintf(sectionsPrompt, catalogSummary(sections), required)
}

func buildSchedulePrompt(req model.ScheduleRequest, choices []model.SectionChoice, ratings []*model.ProfessorRating, sections []model.CourseSection) (string, error) {
	items := make([]promptSection, len(choices))
	for i, c := range choices {
		items[i] = promptSection{
			CourseSection: c.CourseSection,
			Teacher:       c.Teacher,
			Time:          c.Time,
			ClassNumber:   c.ClassNumber,
		}
		if i < len(ratings) {
			items[i].ProfInfo = ratings[i]
		}
	}

	available, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sections: %w", err)
	}

	n := req.NumSchedules
	if n <= 0 {
		n = 3
	}

	return fmt.Sprintf(schedulePrompt,
		req.TeacherPreference,
		studentPreferences(req),
		available,
		meetingTable(sections),
		n,
	), nil
}

func studentPreferences(req model.ScheduleRequest) string {
	var sb strings.Builder
	if len(req.DaysOfWeek) > 0 {
		fmt.Fprintf(&sb, "PREFERRED DAYS: %s\n", strings.Join(req.DaysOfWeek, ", "))
	}
	if req.TimePreference != "" {
		fmt.Fprintf(&sb, "PREFERRED TIME OF DAY: %s\n", req.TimePreference)
	}
	return sb.String()
}

func catalogSummary(sections []model.CourseSection) string {
	sample := sections
	if len(sample) > sampleRows {
		sample = sample[:sampleRows]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "COURSE DATA SUMMARY:\n- Total matching sections: %d\n", len(sections))
	sb.WriteString("- Columns: Course Section, All Instructors, Section Status, Enrolled/Capacity, Meeting Patterns, Locations, Start Date, End Date\n\n")
	sb.WriteString("Sample of matching data:\n")

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Course Section\tAll Instructors\tSection Status\tEnrolled/Capacity\tMeeting Patterns\tLocations\tStart Date\tEnd Date")
	for _, s := range sample {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.CourseSection, s.Instructors, s.Status, s.EnrolledCap,
			s.MeetingPatterns, s.Locations, s.StartDate, s.EndDate)
	}
	w.Flush()

	return sb.String()
}

func meetingTable(sections []model.CourseSection) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Course Section\tMeeting Patterns\tLocations\tStart Date\tEnd Date")
	for _, s := range sections {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.CourseSection, s.MeetingPatterns, s.Locations, s.StartDate, s.EndDate)
	}
	w.Flush()
	return sb.String()
}
