package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pivolan/attrition_dashboard/dashboard"
	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
	"github.com/pivolan/attrition_dashboard/plot"
)

// server renders the dashboard from whatever table load returns. load goes
// through the dataset cache so repeated requests do not re-read the source.
type server struct {
	load     func() (*dataset.Table, error)
	dataName string
	plotOpts plot.Options
}

func newRouter(s *server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/charts/{id:[a-z_]+}.png", s.handleChartPNG).Methods(http.MethodGet)
	r.HandleFunc("/charts/{id:[a-z_]+}", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/api/dashboard", s.handleAPI).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)
	return r
}

// buildView loads the table and computes a fresh view. On failure it returns
// the HTTP status and the message shown to the user.
func (s *server) buildView() (dashboard.View, int, string) {
	table, err := s.load()
	if err == nil {
		var view dashboard.View
		view, err = dashboard.Build(table)
		if err == nil {
			return view, http.StatusOK, ""
		}
	}
	log.Printf("dashboard unavailable: %v", err)
	switch {
	case errors.Is(err, models.ErrDataIntegrity):
		return dashboard.View{}, http.StatusInternalServerError, fmt.Sprintf("데이터 오류: %v", err)
	case errors.Is(err, models.ErrEmptyDataset):
		return dashboard.View{}, http.StatusServiceUnavailable, "데이터가 비어 있습니다."
	default:
		return dashboard.View{}, http.StatusServiceUnavailable, dashboard.UnavailableMessage(s.dataName)
	}
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view, status, message := s.buildView()
	if status != http.StatusOK {
		w.WriteHeader(status)
		if err := dashboard.RenderErrorPage(w, message); err != nil {
			log.Printf("error rendering error page: %v", err)
		}
		return
	}
	if err := dashboard.RenderPage(w, view); err != nil {
		log.Printf("error rendering dashboard %s: %v", view.RenderID, err)
	}
}

func (s *server) series(w http.ResponseWriter, r *http.Request) (models.Series, bool) {
	view, status, message := s.buildView()
	if status != http.StatusOK {
		http.Error(w, message, status)
		return models.Series{}, false
	}
	id := mux.Vars(r)["id"]
	series, ok := view.Series(id)
	if !ok {
		http.Error(w, "chart not available: "+id, http.StatusNotFound)
		return models.Series{}, false
	}
	return series, true
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	series, ok := s.series(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.RenderChart(w, series); err != nil {
		log.Printf("error rendering chart %s: %v", series.ID, err)
	}
}

func (s *server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	series, ok := s.series(w, r)
	if !ok {
		return
	}
	graph, err := plot.Draw(series, s.plotOpts)
	if err != nil {
		log.Printf("error drawing chart %s: %v", series.ID, err)
		http.Error(w, "Error generating chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", dashboard.ChartFileName(series, time.Now())))
	w.Write(graph)
}

func (s *server) handleAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	view, status, message := s.buildView()
	if status != http.StatusOK {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		log.Printf("error encoding dashboard %s: %v", view.RenderID, err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Error encoding dashboard"})
		return
	}
	w.Write(body)
}
