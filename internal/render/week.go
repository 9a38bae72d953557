package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	minBlockHeight   = 8.0
	blockRadius      = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 18
	maxBlockTextRune = 16
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	blockFontSize      = 15.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	blockColor         = color.RGBA{133, 193, 85, 220}
	blockConflictColor = color.RGBA{235, 87, 87, 230}
	blockTextColor     = color.RGBA{20, 24, 28, 230}
	blockShadowColor   = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

var dayLabels = map[model.Weekday]string{
	model.Monday:    "Mon",
	model.Tuesday:   "Tue",
	model.Wednesday: "Wed",
	model.Thursday:  "Thu",
	model.Friday:    "Fri",
	model.Saturday:  "Sat",
	model.Sunday:    "Sun",
}

// hourRange диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// block одно занятие в одной колонке дня
type block struct {
	entry    model.MeetingEntry
	start    float64
	end      float64
	conflict bool
}

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func loadFont(dc *gg.Context, size float64, bold bool) {
	fontsOnce.Do(func() {
		regularFont, _ = opentype.Parse(goregular.TTF)
		boldFont, _ = opentype.Parse(gobold.TTF)
	})

	f := regularFont
	if bold {
		f = boldFont
	}
	if f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage рисует недельную сетку варианта расписания в PNG.
// Занятия из conflicts выделяются красным.
func WeekImage(title string, entries []model.MeetingEntry, conflicts []schedule.Conflict) ([]byte, error) {
	conflicting := make(map[int]bool, len(conflicts)*2)
	for _, c := range conflicts {
		conflicting[c.First] = true
		conflicting[c.Second] = true
	}

	blocksByDay := groupBlocksByDay(entries, conflicting)
	hours := calculateHourRange(blocksByDay)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, title)
	drawHourLabels(dc, hours, cellHeight)

	for i, day := range model.AllWeekdays {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i)
		drawDayHeader(dc, dayLabels[day], x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, b := range blocksByDay[day] {
			drawBlock(dc, b, x, y, dayWidth, hours, cellHeight)
		}
	}

	drawLegend(dc, dayWidth, len(conflicting) > 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// groupBlocksByDay раскладывает занятия по дням недели; занятия без времени пропускаются
func groupBlocksByDay(entries []model.MeetingEntry, conflicting map[int]bool) map[model.Weekday][]block {
	out := make(map[model.Weekday][]block)
	for i, e := range entries {
		start, ok := schedule.ParseTimeIn(e.Start, time.UTC)
		if !ok {
			continue
		}
		end, ok := schedule.ParseTimeIn(e.End, time.UTC)
		if !ok {
			continue
		}

		b := block{
			entry:    e,
			start:    float64(start.Hour()) + float64(start.Minute())/60.0,
			end:      float64(end.Hour()) + float64(end.Minute())/60.0,
			conflict: conflicting[i],
		}
		for _, day := range model.AllWeekdays {
			if e.DaysOfWeek.Contains(day) {
				out[day] = append(out[day], b)
			}
		}
	}
	return out
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(blocksByDay map[model.Weekday][]block) hourRange {
	minHour := 24
	maxHour := 0

	for _, blocks := range blocksByDay {
		for _, b := range blocks {
			startH := int(b.start)
			endH := int(b.end)
			if b.end > float64(endH) {
				endH++
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 23)

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

func drawHeader(dc *gg.Context, title string) {
	loadFont(dc, titleFontSize, true)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, false)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, label string, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, true)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(label, x+float64(dayWidth)/2, y, 0.5, -0.4)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawBlock(dc *gg.Context, b block, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	blockY := y + (b.start-float64(hours.start))*cellHeight
	blockHeight := max((b.end-b.start)*cellHeight, minBlockHeight)
	blockWidth := float64(dayWidth) - float64(dayPaddingX*2)

	fill := blockColor
	if b.conflict {
		fill = blockConflictColor
	}

	// Тень
	dc.SetColor(blockShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, blockY+2+shadowOffset, blockWidth, blockHeight-4, blockRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, blockY+2, blockWidth, blockHeight-4, blockRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+dayPaddingX, blockY+2, blockWidth, blockHeight-4, blockRadius)
	dc.Stroke()

	loadFont(dc, blockFontSize, true)
	dc.SetColor(blockTextColor)
	txtX := x + dayPaddingX + 6
	txtY := blockY + 18
	dc.DrawStringAnchored(truncate(b.entry.Summary), txtX, txtY, 0, 0)

	if blockHeight > 40 && b.entry.Location != "" {
		loadFont(dc, blockFontSize-3, false)
		dc.DrawStringAnchored(truncate(b.entry.Location), txtX, txtY+16, 0, 0)
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxBlockTextRune {
		return s
	}
	return string(r[:maxBlockTextRune-1]) + "…"
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawLegend(dc *gg.Context, dayWidth int, withConflicts bool) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"Class", blockColor},
	}
	if withConflicts {
		items = append(items, struct {
			label string
			clr   color.Color
		}{"Time conflict", blockConflictColor})
	}

	liX := float64(leftLabelsWidth+totalDaysInWeek*dayWidth) + 10
	liY := float64(imageHeight) - 78
	boxW, boxH := 20.0, 14.0

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, false)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}
