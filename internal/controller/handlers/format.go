package handlers

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
)

const helpText = "📚 <b>Commands</b>\n\n" +
	"/build - Build a new class schedule\n" +
	"/history - Your recent schedule builds\n" +
	"/calendar - Set the Google Calendar name for exports\n" +
	"/cancel - Cancel the current dialog\n" +
	"/help - Show this help\n\n" +
	"During /build you pick a quarter, list your courses (for example <code>MATH 51, PHYS 41</code>), " +
	"describe the teachers you like and choose how many options to get. " +
	"Options with overlapping classes are removed automatically."

// formatRunSummary шапка результата генерации
func formatRunSummary(run *model.ScheduleRun) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%d schedule option(s)</b> for %s\n",
		len(run.Candidates), html.EscapeString(strings.Join(run.Request.Courses, ", ")))
	fmt.Fprintf(&sb, "Sections considered: %d, professors researched: %d\n",
		len(run.Sections), countProfessors(run.Professors))
	if run.Notice != "" {
		fmt.Fprintf(&sb, "\n⚠️ %s\n", html.EscapeString(run.Notice))
	}
	return sb.String()
}

func countProfessors(ratings []*model.ProfessorRating) int {
	n := 0
	for _, r := range ratings {
		if r != nil {
			n++
		}
	}
	return n
}

// formatCandidate описание одного варианта: занятия, плюсы, минусы и конфликты
func formatCandidate(index int, c model.ScheduleCandidate, conflicts []schedule.Conflict) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Option %d</b>\n\n", index+1)

	if len(c.Schedule) == 0 {
		sb.WriteString("<i>No classes in this option.</i>\n")
	}
	for _, e := range c.Schedule {
		fmt.Fprintf(&sb, "• <b>%s</b> %s %s\n",
			html.EscapeString(e.Summary), e.DaysOfWeek.String(), formatTimeRange(e.Start, e.End))
		var extra []string
		if e.Description != "" {
			extra = append(extra, html.EscapeString(e.Description))
		}
		if e.Location != "" {
			extra = append(extra, "📍 "+html.EscapeString(e.Location))
		}
		if len(extra) > 0 {
			fmt.Fprintf(&sb, "   %s\n", strings.Join(extra, ", "))
		}
	}

	writeList(&sb, "👍 Pros", c.Pros)
	writeList(&sb, "👎 Cons", c.Cons)

	if len(conflicts) > 0 {
		sb.WriteString("\n⛔️ <b>Time conflicts</b>\n")
		for _, cf := range conflicts {
			fmt.Fprintf(&sb, "• %s ↔ %s\n",
				html.EscapeString(cf.FirstSummary), html.EscapeString(cf.SecondSummary))
		}
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n<b>%s</b>\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "• %s\n", html.EscapeString(item))
	}
}

// formatTimeRange показывает время начала и конца как "13:00–14:05".
// Неразбираемые значения выводятся как есть.
func formatTimeRange(start, end string) string {
	s, okStart := schedule.ParseTimeIn(start, time.UTC)
	e, okEnd := schedule.ParseTimeIn(end, time.UTC)
	if !okStart || !okEnd {
		return html.EscapeString(strings.TrimSpace(start + " " + end))
	}
	return s.Format("15:04") + "–" + e.Format("15:04")
}

// formatHistory список последних генераций
func formatHistory(runs []*model.ScheduleRun, loc *time.Location) string {
	if len(runs) == 0 {
		return "You have not built any schedules yet. Try /build."
	}
	var sb strings.Builder
	sb.WriteString("🕘 <b>Recent builds</b>\n\n")
	for _, run := range runs {
		fmt.Fprintf(&sb, "• %s, %s: %d option(s), %s\n",
			run.CreatedAt.In(loc).Format("02.01.2006 15:04"),
			html.EscapeString(run.Request.Quarter),
			len(run.Candidates),
			html.EscapeString(strings.Join(run.Request.Courses, ", ")),
		)
	}
	return sb.String()
}
