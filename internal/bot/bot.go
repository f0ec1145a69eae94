package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"retro-taskmaster/internal/repository"
	"retro-taskmaster/internal/service"
)

const (
	cbDonePrefix    = "done:"
	cbDeletePrefix  = "delete:"
	cbConfirmPrefix = "confirm:"
	cbCancelPrefix  = "cancel:"
)

// sender is the subset of the Telegram client the handlers need.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot aggregates Telegram API with services.
type Bot struct {
	client        *tgbotapi.BotAPI
	api           sender
	taskSvc       *service.TaskService
	categorySvc   *service.CategoryService
	summarySvc    *service.SummaryService
	notifier      service.Notifier
	allowedChat   int64
	now           func() time.Time
	conversations map[int64]*conversationState
	mu            sync.Mutex
}

// New authorizes against Telegram. When allowedChat is non-zero, only that
// chat is served.
func New(
	token string,
	allowedChat int64,
	taskSvc *service.TaskService,
	categorySvc *service.CategoryService,
	summarySvc *service.SummaryService,
	notifier service.Notifier,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	b := newBot(api, allowedChat, taskSvc, categorySvc, summarySvc, notifier)
	b.client = api
	return b, nil
}

func newBot(
	api sender,
	allowedChat int64,
	taskSvc *service.TaskService,
	categorySvc *service.CategoryService,
	summarySvc *service.SummaryService,
	notifier service.Notifier,
) *Bot {
	return &Bot{
		api:           api,
		taskSvc:       taskSvc,
		categorySvc:   categorySvc,
		summarySvc:    summarySvc,
		notifier:      notifier,
		allowedChat:   allowedChat,
		now:           time.Now,
		conversations: make(map[int64]*conversationState),
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if b.client == nil {
		return errors.New("bot client is not initialized")
	}
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.client.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.client.StopReceivingUpdates()
	}()

	for update := range updates {
		b.handleUpdate(ctx, update)
	}

	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Printf("handle callback: %v", err)
		}
	case update.Message != nil:
		if !b.chatAllowed(update.Message.Chat) {
			return
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("handle message: %v", err)
		}
	}
}

func (b *Bot) chatAllowed(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if b.allowedChat != 0 {
		return chat.ID == b.allowedChat
	}
	return chat.IsPrivate()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelInput(msg.Text) {
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "⏪ Tehtävän luonti peruttu.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.Chat.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "En ymmärtänyt viestiä. Lisää tehtävä komennolla /newtask tai katso /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help":
		return b.handleHelp(msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "newtask":
		return b.startNewTaskConversation(ctx, msg)
	case "tasks":
		return b.sendTaskList(ctx, msg.Chat.ID, strings.TrimSpace(msg.CommandArguments()))
	case "categories":
		return b.handleCategories(ctx, msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "delete":
		return b.handleDelete(ctx, msg)
	case "cancel":
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "⏪ Tehtävän luonti peruttu.")
	default:
		return b.sendText(msg.Chat.ID, "Tuntematon komento. Katso /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "ystävä"
	}
	text := fmt.Sprintf("👋 Hei, %s!\n<b>Pidän kirjaa tehtävistäsi ja niiden määräajoista.</b>\n\n%s",
		escape(name), commandList)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, "ℹ️ <b>Komennot</b>\n"+commandList)
}

const commandList = "• /newtask — lisää tehtävä vaiheittain\n" +
	"• /tasks [kategoria] — näytä tehtävät\n" +
	"• /done &lt;id&gt; — merkitse tehty tai avaa uudelleen\n" +
	"• /delete &lt;id&gt; — poista tehtävä\n" +
	"• /categories — kategoriat\n" +
	"• /report — päivän katsaus\n" +
	"• /cancel — peru syöttö"

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	text, err := b.summarySvc.DailyReport(ctx, b.now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Katsauksen luonti epäonnistui: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

// SendDailyReport pushes the summary to chatID. Used by the scheduler.
func (b *Bot) SendDailyReport(ctx context.Context, chatID int64) error {
	text, err := b.summarySvc.DailyReport(ctx, b.now())
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}
	if err := b.sendText(chatID, text); err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}
	return nil
}

func (b *Bot) handleCategories(ctx context.Context, msg *tgbotapi.Message) error {
	categories, err := b.categorySvc.List(ctx)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Kategorioiden haku epäonnistui: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatCategories(categories))
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, err := parseTaskID(msg.CommandArguments(), "")
	if err != nil {
		return b.sendText(msg.Chat.ID, "Anna tehtävän numero: /done 12")
	}
	return b.flipTask(ctx, msg.Chat.ID, taskID)
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, err := parseTaskID(msg.CommandArguments(), "")
	if err != nil {
		return b.sendText(msg.Chat.ID, "Anna tehtävän numero: /delete 12")
	}
	return b.askDeleteConfirmation(ctx, msg.Chat.ID, taskID)
}

func (b *Bot) flipTask(ctx context.Context, chatID int64, taskID uint) error {
	task, err := b.taskSvc.FlipTask(ctx, taskID)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	b.publish(service.EventTasksChanged)
	log.Printf("[info] task flipped id=%d completed=%t", task.ID, task.Completed)

	text := fmt.Sprintf("✅ Tehtävä «%s» tehty.", escape(task.Content))
	if !task.Completed {
		text = fmt.Sprintf("↩️ Tehtävä «%s» avattu uudelleen.", escape(task.Content))
	}
	return b.sendText(chatID, text)
}

func (b *Bot) askDeleteConfirmation(ctx context.Context, chatID int64, taskID uint) error {
	task, err := b.taskSvc.GetTask(ctx, taskID)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Poistetaanko tehtävä «%s» (#%d)?", escape(task.Content), task.ID))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Poista", fmt.Sprintf("%s%d", cbConfirmPrefix, task.ID)),
		tgbotapi.NewInlineKeyboardButtonData("↩️ Peru", fmt.Sprintf("%s%d", cbCancelPrefix, task.ID)),
	))
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, taskID uint) error {
	if err := b.taskSvc.DeleteTask(ctx, taskID); err != nil {
		return b.sendText(chatID, describeError(err))
	}
	b.publish(service.EventTasksChanged)
	log.Printf("[info] task deleted id=%d", taskID)
	return b.sendText(chatID, fmt.Sprintf("🗑 Tehtävä #%d poistettu.", taskID))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil || !b.chatAllowed(cb.Message.Chat) {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	chatID := cb.Message.Chat.ID
	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbDonePrefix):
		taskID, err := parseTaskID(data, cbDonePrefix)
		if err != nil {
			return nil
		}
		if err := b.flipTask(ctx, chatID, taskID); err != nil {
			return err
		}
		return b.sendTaskList(ctx, chatID, "")
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseTaskID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		return b.askDeleteConfirmation(ctx, chatID, taskID)
	case strings.HasPrefix(data, cbConfirmPrefix):
		taskID, err := parseTaskID(data, cbConfirmPrefix)
		if err != nil {
			return nil
		}
		return b.deleteTask(ctx, chatID, taskID)
	case strings.HasPrefix(data, cbCancelPrefix):
		return b.sendText(chatID, "↩️ Poisto peruttu.")
	default:
		return nil
	}
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, category string) error {
	tasks, err := b.taskSvc.ListTasks(ctx, category)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	categories, err := b.categorySvc.List(ctx)
	if err != nil {
		return b.sendText(chatID, describeError(err))
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "Ei tehtäviä. Lisää uusi komennolla /newtask.")
	}

	msg := tgbotapi.NewMessage(chatID, formatTaskList(tasks, categories, b.now()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = taskButtons(tasks)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) publish(eventType string) {
	if b.notifier != nil {
		b.notifier.Publish(eventType)
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	if b.hasConversation(msg.Chat.ID) {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(ctx, msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.sendTaskList(ctx, msg.Chat.ID, "")
	case strings.ToLower(menuLabelCategories):
		return true, b.handleCategories(ctx, msg)
	case strings.ToLower(menuLabelReport):
		return true, b.handleReport(ctx, msg)
	default:
		return false, nil
	}
}

func parseTaskID(data, prefix string) (uint, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(data, prefix))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(value), nil
}

// describeError turns service errors into a user-facing line.
func describeError(err error) string {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		return "Tehtävää ei löytynyt."
	case errors.Is(err, repository.ErrMalformedDate):
		return "Päivämäärä ei kelpaa. Käytä muotoa <code>PP.KK.VVVV</code>."
	case errors.Is(err, service.ErrEmptyContent):
		return "Tehtävän kuvaus ei voi olla tyhjä."
	case errors.Is(err, repository.ErrConnectivity):
		return "Tietokantaan ei saada yhteyttä. Yritä hetken päästä uudelleen."
	default:
		return fmt.Sprintf("Virhe: %s", escape(err.Error()))
	}
}
