package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"retro-taskmaster/internal/palette"
	"retro-taskmaster/internal/service"
)

type categoryRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	IconName string `json:"icon_name"`
}

func (req categoryRequest) input() service.CategoryInput {
	return service.CategoryInput{Name: req.Name, Color: req.Color, Icon: req.IconName}
}

type masterRequest struct {
	MasterID *uint `json:"master_id"`
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	category, err := s.categories.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	writeJSON(w, http.StatusCreated, newCategoryView(*category))
}

// renameCategory also cascades the new name to tasks, so both feeds change.
func (s *Server) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	category, err := s.categories.Rename(r.Context(), mux.Vars(r)["name"], req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, newCategoryView(*category))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.categories.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	s.publish(service.EventTasksChanged)
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) assignMaster(w http.ResponseWriter, r *http.Request) {
	var req masterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	name := mux.Vars(r)["name"]
	if err := s.categories.AssignMaster(r.Context(), name, req.MasterID); err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "master_id": req.MasterID})
}

func (s *Server) listMasters(w http.ResponseWriter, r *http.Request) {
	masters, err := s.categories.ListMasters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]masterView, 0, len(masters))
	for _, m := range masters {
		views = append(views, newMasterView(m))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) createMaster(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	master, err := s.categories.CreateMaster(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	writeJSON(w, http.StatusCreated, newMasterView(*master))
}

func (s *Server) deleteMaster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.categories.DeleteMaster(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.publish(service.EventCategoriesChanged)
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) listPalette(w http.ResponseWriter, r *http.Request) {
	icons := make(map[string]palette.Icon)
	for _, key := range palette.IconKeys() {
		icons[key] = palette.ResolveIcon(key)
	}
	colors := make(map[string]string)
	for _, key := range palette.ColorKeys() {
		colors[key] = palette.ResolveColor(key)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"icons":         icons,
		"colors":        colors,
		"default_color": palette.DefaultColor,
	})
}
