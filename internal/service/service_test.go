package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/repository"
)

type testServices struct {
	tasks      *TaskService
	categories *CategoryService
	summary    *SummaryService
}

func setupServices(t *testing.T) testServices {
	t.Helper()
	db, err := repository.NewDB("sqlite", filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	taskRepo := repository.NewTaskRepository(db)
	return testServices{
		tasks:      NewTaskService(taskRepo),
		categories: NewCategoryService(repository.NewCategoryRepository(db), repository.NewMasterCategoryRepository(db)),
		summary:    NewSummaryService(taskRepo),
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	if _, err := svc.tasks.CreateTask(ctx, TaskInput{Content: "   ", Deadline: "01.01.2024"}); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	task, err := svc.tasks.CreateTask(ctx, TaskInput{Content: " Buy milk ", Category: " Työ ", Deadline: " 7.1.2024 "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.Content != "Buy milk" || task.Category != "Työ" || task.Deadline != "2024-01-07" {
		t.Errorf("unexpected task %+v", task)
	}

	if _, err := svc.tasks.UpdateTask(ctx, task.ID, TaskInput{Content: ""}); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent on update, got %v", err)
	}
	updated, err := svc.tasks.UpdateTask(ctx, task.ID, TaskInput{Content: "Buy oat milk", Category: "Koulu", Deadline: "08.01.2024"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "Buy oat milk" || updated.Category != "Koulu" {
		t.Errorf("unexpected updated task %+v", updated)
	}
}

func TestCategoryServiceRenameKeepsName(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	if _, err := svc.categories.Create(ctx, CategoryInput{Name: " "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	cat, err := svc.categories.Rename(ctx, "Koulu", CategoryInput{Color: "Violetti", Icon: "Idea"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if cat.Name != "Koulu" || cat.Color != "Violetti" || cat.IconName != "Idea" {
		t.Errorf("unexpected category %+v", cat)
	}

	if _, err := svc.categories.CreateMaster(ctx, CategoryInput{}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName for master, got %v", err)
	}
}

func TestSummaryGroups(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	inputs := []TaskInput{
		{Content: "late", Category: "Työ", Deadline: "09.03.2024"},
		{Content: "today", Category: "Koulu", Deadline: "10.03.2024"},
		{Content: "tomorrow", Category: "Koulu", Deadline: "11.03.2024"},
		{Content: "next week", Category: "Muu", Deadline: "17.03.2024"},
		{Content: "done", Category: "Muu", Deadline: "01.03.2024"},
	}
	var doneID uint
	for _, in := range inputs {
		task, err := svc.tasks.CreateTask(ctx, in)
		if err != nil {
			t.Fatalf("create %q: %v", in.Content, err)
		}
		if in.Content == "done" {
			doneID = task.ID
		}
	}
	if _, err := svc.tasks.FlipTask(ctx, doneID); err != nil {
		t.Fatalf("flip: %v", err)
	}

	summary, err := svc.summary.Summary(ctx, now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Date != "10.03.2024" {
		t.Errorf("unexpected date %s", summary.Date)
	}
	if len(summary.Overdue) != 1 || summary.Overdue[0].Content != "late" {
		t.Errorf("unexpected overdue %+v", summary.Overdue)
	}
	if len(summary.DueSoon) != 2 || summary.DueSoon[0].Content != "today" || summary.DueSoon[1].Content != "tomorrow" {
		t.Errorf("unexpected due soon %+v", summary.DueSoon)
	}
	if len(summary.Later) != 1 || summary.Later[0].Content != "next week" {
		t.Errorf("unexpected later %+v", summary.Later)
	}
	if summary.Completed != 1 || summary.Open() != 4 {
		t.Errorf("unexpected counts: completed=%d open=%d", summary.Completed, summary.Open())
	}

	report, err := svc.summary.DailyReport(ctx, now)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(report, "late") || !strings.Contains(report, "09.03.2024") {
		t.Errorf("report missing overdue task:\n%s", report)
	}
}

func TestFormatSummaryEscapes(t *testing.T) {
	out := FormatSummary(Summary{
		Date:  "01.01.2024",
		Later: []model.Task{{ID: 3, Content: "<b>x</b>", Category: "Muu", Deadline: "2024-01-05"}},
	})
	if strings.Contains(out, "<b>x</b>") {
		t.Errorf("content should be escaped:\n%s", out)
	}
	if !strings.Contains(out, "05.01.2024") {
		t.Errorf("deadline should be in display form:\n%s", out)
	}
	if !strings.Contains(out, "ei tehtäviä") {
		t.Errorf("empty sections should be marked:\n%s", out)
	}
}

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:30", "0 30 8 * * *", false},
		{"23:59", "0 59 23 * * *", false},
		{"24:00", "", true},
		{"8", "", true},
		{"aa:10", "", true},
		{"10:60", "", true},
	}
	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleDaily("07:15", func() {}); err != nil {
		t.Fatalf("schedule daily: %v", err)
	}
	if _, err := s.ScheduleInterval(0, func() {}); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := s.ScheduleInterval(time.Hour, func() {}); err != nil {
		t.Fatalf("schedule interval: %v", err)
	}
	if s.Entries() != 2 {
		t.Errorf("expected 2 entries, got %d", s.Entries())
	}
	s.Start()
	s.Stop()
}

func TestCategoryServiceRenameKeepsStyle(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	cat, err := svc.categories.Rename(ctx, "Työ", CategoryInput{Name: "Duuni"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if cat.Name != "Duuni" || cat.Color != "#F96635" || cat.IconName != "Työ" {
		t.Errorf("expected color and icon to be kept, got %+v", cat)
	}

	if _, err := svc.categories.Rename(ctx, "Nope", CategoryInput{Name: "x"}); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryNameValidation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		want error
	}{
		{"Koti/Piha", ErrInvalidName},
		{"Kaikki", ErrReservedName},
		{" kaikki ", ErrReservedName},
		{"", ErrEmptyName},
	}
	for _, tt := range tests {
		if _, err := svc.categories.Create(ctx, CategoryInput{Name: tt.name}); !errors.Is(err, tt.want) {
			t.Errorf("Create(%q): expected %v, got %v", tt.name, tt.want, err)
		}
		if _, err := svc.categories.CreateMaster(ctx, CategoryInput{Name: tt.name}); !errors.Is(err, tt.want) {
			t.Errorf("CreateMaster(%q): expected %v, got %v", tt.name, tt.want, err)
		}
	}

	if _, err := svc.categories.Rename(ctx, "Koulu", CategoryInput{Name: "KAIKKI"}); !errors.Is(err, ErrReservedName) {
		t.Errorf("expected ErrReservedName on rename, got %v", err)
	}
	if _, err := svc.categories.Rename(ctx, "Koulu", CategoryInput{Name: "Koulu/Yliopisto"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName on rename, got %v", err)
	}

	categories, err := svc.categories.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range categories {
		if strings.Contains(c.Name, "/") || strings.EqualFold(c.Name, model.AllCategories) {
			t.Errorf("invalid category stored: %q", c.Name)
		}
	}
}
