package httpapi

import (
	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/palette"
)

type taskView struct {
	ID          uint   `json:"id"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Deadline    string `json:"deadline"`
	DeadlineISO string `json:"deadline_iso"`
	Completed   bool   `json:"completed"`
	Color       string `json:"color,omitempty"`
}

type categoryView struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Color    string       `json:"color"`
	IconName string       `json:"icon_name"`
	MasterID *uint        `json:"master_id,omitempty"`
	Hex      string       `json:"hex"`
	Icon     palette.Icon `json:"icon"`
}

type masterView struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Color    string       `json:"color"`
	IconName string       `json:"icon_name"`
	Hex      string       `json:"hex"`
	Icon     palette.Icon `json:"icon"`
}

type summaryView struct {
	Date      string     `json:"date"`
	Overdue   []taskView `json:"overdue"`
	DueSoon   []taskView `json:"due_soon"`
	Later     []taskView `json:"later"`
	Open      int        `json:"open"`
	Completed int        `json:"completed"`
}

func newTaskView(task model.Task, colors map[string]string) taskView {
	return taskView{
		ID:          task.ID,
		Content:     task.Content,
		Category:    task.Category,
		Deadline:    task.Deadline.Display(),
		DeadlineISO: string(task.Deadline),
		Completed:   task.Completed,
		Color:       colors[task.Category],
	}
}

func taskViews(tasks []model.Task) []taskView {
	return coloredTaskViews(tasks, nil)
}

func coloredTaskViews(tasks []model.Task, colors map[string]string) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, newTaskView(task, colors))
	}
	return views
}

func newCategoryView(c model.Category) categoryView {
	return categoryView{
		ID:       c.ID,
		Name:     c.Name,
		Color:    c.Color,
		IconName: c.IconName,
		MasterID: c.MasterID,
		Hex:      palette.ResolveColor(c.Color),
		Icon:     palette.ResolveIcon(c.IconName),
	}
}

func newMasterView(m model.MasterCategory) masterView {
	return masterView{
		ID:       m.ID,
		Name:     m.Name,
		Color:    m.Color,
		IconName: m.IconName,
		Hex:      palette.ResolveColor(m.Color),
		Icon:     palette.ResolveIcon(m.IconName),
	}
}

// categoryColors maps category names to resolved hex colors.
func categoryColors(categories []model.Category) map[string]string {
	colors := make(map[string]string, len(categories))
	for _, c := range categories {
		colors[c.Name] = palette.ResolveColor(c.Color)
	}
	return colors
}
