package service

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"retro-taskmaster/internal/dates"
	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/repository"
)

// dueSoonDays is how many days ahead (today included) count as "due soon".
const dueSoonDays = 2

// Summary groups open tasks by urgency relative to a reference day.
type Summary struct {
	Date      string       `json:"date"`
	Overdue   []model.Task `json:"overdue"`
	DueSoon   []model.Task `json:"due_soon"`
	Later     []model.Task `json:"later"`
	Completed int          `json:"completed"`
}

// Open is the number of tasks not yet completed.
func (s Summary) Open() int {
	return len(s.Overdue) + len(s.DueSoon) + len(s.Later)
}

// SummaryService builds human-readable summaries for reports.
type SummaryService struct {
	taskRepo *repository.TaskRepository
}

func NewSummaryService(taskRepo *repository.TaskRepository) *SummaryService {
	return &SummaryService{taskRepo: taskRepo}
}

// Summary classifies every open task. Tasks keep their deadline order inside
// each group.
func (s *SummaryService) Summary(ctx context.Context, now time.Time) (Summary, error) {
	tasks, err := s.taskRepo.List(ctx, "")
	if err != nil {
		return Summary{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	summary := Summary{
		Date:    dates.Today(now),
		Overdue: []model.Task{},
		DueSoon: []model.Task{},
		Later:   []model.Task{},
	}
	for _, task := range tasks {
		if task.Completed {
			summary.Completed++
			continue
		}
		deadline, err := time.ParseInLocation(dates.StorageLayout, string(task.Deadline), now.Location())
		if err != nil {
			summary.Later = append(summary.Later, task)
			continue
		}
		days := int(math.Round(deadline.Sub(today).Hours() / 24))
		switch {
		case days < 0:
			summary.Overdue = append(summary.Overdue, task)
		case days < dueSoonDays:
			summary.DueSoon = append(summary.DueSoon, task)
		default:
			summary.Later = append(summary.Later, task)
		}
	}
	return summary, nil
}

// DailyReport renders the summary as Telegram-flavoured HTML.
func (s *SummaryService) DailyReport(ctx context.Context, now time.Time) (string, error) {
	summary, err := s.Summary(ctx, now)
	if err != nil {
		return "", err
	}
	return FormatSummary(summary), nil
}

// FormatSummary renders a summary as Telegram-flavoured HTML.
func FormatSummary(summary Summary) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Päivän katsaus</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s · avoinna %d, valmiina %d\n", summary.Date, summary.Open(), summary.Completed))

	writeSection(&builder, "⚠️ <b>Myöhässä</b>", summary.Overdue)
	writeSection(&builder, "⏳ <b>Pian</b>", summary.DueSoon)
	writeSection(&builder, "🟢 <b>Myöhemmin</b>", summary.Later)

	return strings.TrimSpace(builder.String())
}

func writeSection(b *strings.Builder, title string, tasks []model.Task) {
	b.WriteString("\n" + title + "\n")
	if len(tasks) == 0 {
		b.WriteString("— ei tehtäviä\n")
		return
	}
	for _, task := range tasks {
		b.WriteString(formatTask(task))
	}
}

func formatTask(task model.Task) string {
	return fmt.Sprintf("• <b>#%d</b> %s <i>(%s)</i> · %s\n",
		task.ID,
		html.EscapeString(strings.TrimSpace(task.Content)),
		html.EscapeString(task.Category),
		task.Deadline.Display(),
	)
}
