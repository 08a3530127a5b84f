package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"confschedule/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	roomController *controllers.RoomController,
	presentationController *controllers.PresentationController,
	scheduleController *controllers.ScheduleController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /users", userController.CreateUser)

	// Rooms
	mux.HandleFunc("POST /rooms", roomController.CreateRoom)
	mux.HandleFunc("GET /rooms", roomController.ListRooms)

	// Presentations
	mux.HandleFunc("POST /presentations", presentationController.CreatePresentation)
	mux.HandleFunc("GET /presentations", presentationController.ListPresentations)
	mux.HandleFunc("PUT /presentations/{presentationID}", presentationController.UpdatePresentation)
	mux.HandleFunc("DELETE /presentations/{presentationID}", presentationController.DeletePresentation)
	mux.HandleFunc("GET /presenters/{presenterID}/presentations", presentationController.PresentationsByPresenter)

	// Schedules
	mux.HandleFunc("POST /presentations/{presentationID}/schedule", scheduleController.SchedulePresentation)
	mux.HandleFunc("POST /registrations", scheduleController.RegisterListener)
	mux.HandleFunc("GET /schedules", scheduleController.SchedulesByRoom)

	// Health + metrics
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
