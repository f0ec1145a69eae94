package service

// Change events published after successful mutations. Subscribers re-fetch;
// events never carry state.
const (
	EventTasksChanged      = "tasks_changed"
	EventCategoriesChanged = "categories_changed"
)

// Notifier receives change events.
type Notifier interface {
	Publish(eventType string)
}
