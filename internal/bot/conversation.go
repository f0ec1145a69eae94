package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"retro-taskmaster/internal/dates"
	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/palette"
	"retro-taskmaster/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageContent
	stageCategory
	stageDeadline
)

type conversationState struct {
	stage      conversationStage
	input      service.TaskInput
	categories []model.Category
}

func (b *Bot) startNewTaskConversation(ctx context.Context, msg *tgbotapi.Message) error {
	log.Printf("[info] start new task conversation chat=%d", msg.Chat.ID)
	b.setConversation(msg.Chat.ID, &conversationState{stage: stageContent})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 Uusi tehtävä.\n<b>Vaihe 1/3:</b> mitä pitää tehdä?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.Chat.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageContent:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Kirjoita tehtävän kuvaus.", cancelKeyboard())
		}
		categories, err := b.categorySvc.List(ctx)
		if err != nil {
			b.clearConversation(msg.Chat.ID)
			return b.sendText(msg.Chat.ID, describeError(err))
		}
		state.input.Content = text
		state.categories = categories
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 <b>Vaihe 2/3:</b> valitse kategoria.", categoryKeyboard(categories))
	case stageCategory:
		name, ok := resolveCategoryInput(text, state.categories)
		if !ok {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Tuntematon kategoria. Valitse jokin painikkeista.", categoryKeyboard(state.categories))
		}
		state.input.Category = name
		state.stage = stageDeadline
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ <b>Vaihe 3/3:</b> määräaika muodossa <code>PP.KK.VVVV</code>.", deadlineKeyboard())
	case stageDeadline:
		deadline, err := resolveDeadlineInput(text, b.now())
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Päivämäärä ei kelpaa. Käytä muotoa <code>PP.KK.VVVV</code>, esim. <code>24.12.2024</code>.", deadlineKeyboard())
		}
		state.input.Deadline = deadline
		b.clearConversation(msg.Chat.ID)
		return b.finishTaskCreation(ctx, msg.Chat.ID, state.input)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Keskustelu nollattiin. Aloita uudelleen komennolla /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, chatID int64, input service.TaskInput) error {
	task, err := b.taskSvc.CreateTask(ctx, input)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	b.publish(service.EventTasksChanged)
	log.Printf("[info] task created id=%d category=%s", task.ID, task.Category)

	var summary strings.Builder
	summary.WriteString("✅ <b>Tehtävä tallennettu</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>ID:</b> %d\n", task.ID))
	summary.WriteString(fmt.Sprintf("• <b>Tehtävä:</b> %s\n", escape(task.Content)))
	summary.WriteString(fmt.Sprintf("• <b>Kategoria:</b> %s\n", escape(task.Category)))
	summary.WriteString(fmt.Sprintf("• <b>Määräaika:</b> %s", task.Deadline.Display()))
	return b.sendText(chatID, summary.String())
}

// resolveCategoryInput maps a keyboard label or a typed name to a category
// name. Skipping picks the fallback category.
func resolveCategoryInput(text string, categories []model.Category) (string, bool) {
	if isSkipInput(text) {
		return model.SentinelCategory, true
	}
	for _, c := range categories {
		if text == categoryLabel(c) || strings.EqualFold(text, c.Name) {
			return c.Name, true
		}
	}
	return "", false
}

// resolveDeadlineInput returns the deadline in display form.
func resolveDeadlineInput(text string, now time.Time) (string, error) {
	switch strings.ToLower(text) {
	case strings.ToLower(btnToday):
		return now.Format(dates.DisplayLayout), nil
	case strings.ToLower(btnTomorrow):
		return now.AddDate(0, 0, 1).Format(dates.DisplayLayout), nil
	}
	if _, err := dates.ParseDisplay(text); err != nil {
		return "", err
	}
	return text, nil
}

func categoryLabel(c model.Category) string {
	return fmt.Sprintf("%s %s", palette.ResolveIcon(c.IconName).Emoji, c.Name)
}

func (b *Bot) setConversation(chatID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[chatID] = state
}

func (b *Bot) getConversation(chatID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[chatID]
}

func (b *Bot) hasConversation(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[chatID]
	return ok
}

func (b *Bot) clearConversation(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, chatID)
}
