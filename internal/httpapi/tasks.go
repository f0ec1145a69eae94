package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"retro-taskmaster/internal/service"
)

type taskRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	Deadline string `json:"deadline"`
}

func (req taskRequest) input() service.TaskInput {
	return service.TaskInput{Content: req.Content, Category: req.Category, Deadline: req.Deadline}
}

type toggleRequest struct {
	Completed bool `json:"completed"`
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad id %q", errBadRequest, mux.Vars(r)["id"])
	}
	return uint(id), nil
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coloredTaskViews(tasks, categoryColors(categories)))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTaskView(*task, nil))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.CreateTask(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusCreated, newTaskView(*task, nil))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req taskRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.UpdateTask(r.Context(), id, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, newTaskView(*task, nil))
}

// toggleTask writes the negation of the completion state the client last saw.
func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req toggleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.tasks.ToggleTask(r.Context(), id, req.Completed); err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "completed": !req.Completed})
}

func (s *Server) flipTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.FlipTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, newTaskView(*task, nil))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}
