package bot

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"retro-taskmaster/internal/dates"
	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/palette"
)

const (
	btnSkip             = "⏭️ Ohita"
	btnToday            = "Tänään"
	btnTomorrow         = "Huomenna"
	btnCancelDialog     = "⏪ Peru syöttö"
	iconDefault         = "🟢"
	iconDue             = "⏳"
	iconOverdue         = "⚠️"
	iconDone            = "✅"
	menuLabelNewTask    = "➕ Uusi tehtävä"
	menuLabelTasks      = "📋 Tehtävät"
	menuLabelCategories = "📂 Kategoriat"
	menuLabelReport     = "🗓 Katsaus"
)

// maxTaskButtons keeps inline keyboards within Telegram's limits.
const maxTaskButtons = 30

func formatTaskList(tasks []model.Task, categories []model.Category, now time.Time) string {
	type group struct {
		label string
		tasks []model.Task
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(categories))
	for _, c := range categories {
		groups[c.Name] = &group{label: categoryLabel(c)}
		order = append(order, c.Name)
	}
	for _, task := range tasks {
		g, ok := groups[task.Category]
		if !ok {
			g = &group{label: task.Category}
			groups[task.Category] = g
			order = append(order, task.Category)
		}
		g.tasks = append(g.tasks, task)
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Tehtävät</b>\n")
	for _, name := range order {
		g := groups[name]
		if len(g.tasks) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n<b>%s</b>\n", escape(g.label)))
		for _, task := range g.tasks {
			builder.WriteString(formatTask(task, now))
		}
	}
	return strings.TrimSpace(builder.String())
}

func formatTask(task model.Task, now time.Time) string {
	if task.Completed {
		return fmt.Sprintf("%s <b>#%d</b> <s>%s</s>\n", iconDone, task.ID, escape(task.Content))
	}
	return fmt.Sprintf("%s <b>#%d</b> %s · %s\n", taskIcon(task, now), task.ID, escape(task.Content), task.Deadline.Display())
}

func taskIcon(task model.Task, now time.Time) string {
	if task.Completed {
		return iconDone
	}
	deadline, err := time.ParseInLocation(dates.StorageLayout, string(task.Deadline), now.Location())
	if err != nil {
		return iconDefault
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Round(deadline.Sub(today).Hours() / 24))
	switch {
	case days < 0:
		return iconOverdue
	case days <= 1:
		return iconDue
	default:
		return iconDefault
	}
}

func formatCategories(categories []model.Category) string {
	if len(categories) == 0 {
		return "Ei kategorioita."
	}
	var builder strings.Builder
	builder.WriteString("📂 <b>Kategoriat</b>\n")
	for _, c := range categories {
		builder.WriteString(fmt.Sprintf("• %s <code>%s</code>\n", escape(categoryLabel(c)), palette.ResolveColor(c.Color)))
	}
	return strings.TrimSpace(builder.String())
}

func taskButtons(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		if len(rows) == maxTaskButtons {
			break
		}
		label := fmt.Sprintf("✅ #%d · %s", task.ID, shortText(task.Content, 24))
		if task.Completed {
			label = fmt.Sprintf("↩️ #%d · %s", task.ID, shortText(task.Content, 24))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbDonePrefix, task.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("%s%d", cbDeletePrefix, task.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func shortText(text string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelCategories),
			tgbotapi.NewKeyboardButton(menuLabelReport),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// categoryKeyboard lays out categories two per row.
func categoryKeyboard(categories []model.Category) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, c := range categories {
		row = append(row, tgbotapi.NewKeyboardButton(categoryLabel(c)))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnSkip),
		tgbotapi.NewKeyboardButton(btnCancelDialog),
	))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func deadlineKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnTomorrow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "ohita"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "peru"
}

func escape(s string) string {
	return html.EscapeString(s)
}
