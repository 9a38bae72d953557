package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	httpHandlers "github.com/Freeeeeet/schedule_builder/internal/api/http"
	"github.com/Freeeeeet/schedule_builder/internal/api/middleware"
)

// NewRouter собирает маршруты HTTP API
func NewRouter(h *httpHandlers.ScheduleHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS)

	router.HandleFunc("/api/health", h.Health).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/quarters", h.Quarters).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/api/generate-schedule", h.GenerateSchedule).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/validate", h.Validate).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/runs/{id:[0-9a-fA-F-]{36}}", h.GetRun).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/api/add-to-calendar", h.AddToCalendar).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/export/ics", h.ExportICS).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/export/csv", h.ExportCSV).Methods(http.MethodPost, http.MethodOptions)

	return router
}
