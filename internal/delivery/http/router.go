package http

import (
	"net/http"

	"kine-booking-api/internal/delivery/http/handler"
	"kine-booking-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	kinesiologistHandler *handler.KinesiologistHandler
	availabilityHandler  *handler.AvailabilityHandler
	slotHandler          *handler.SlotHandler
	appointmentHandler   *handler.AppointmentHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	kinesiologistHandler *handler.KinesiologistHandler,
	availabilityHandler *handler.AvailabilityHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		kinesiologistHandler: kinesiologistHandler,
		availabilityHandler:  availabilityHandler,
		slotHandler:          slotHandler,
		appointmentHandler:   appointmentHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public directory: browse clinicians and their free slots
	api.HandleFunc("/kinesiologists", r.kinesiologistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/kinesiologists/{id}/slots", r.slotHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Admin: clinician onboarding
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/kinesiologists", r.kinesiologistHandler.Create).Methods(http.MethodPost)

	// Kinesiologist self-service
	kine := api.NewRoute().Subrouter()
	kine.Use(r.authMiddleware.Authenticate)
	kine.Use(middleware.RequireKinesiologist)
	kine.HandleFunc("/kinesiologist/profile", r.kinesiologistHandler.GetProfile).Methods(http.MethodGet)
	kine.HandleFunc("/kinesiologist/profile", r.kinesiologistHandler.UpdateProfile).Methods(http.MethodPut)
	kine.HandleFunc("/kinesiologist/appointments/upcoming", r.appointmentHandler.Upcoming).Methods(http.MethodGet)
	kine.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	kine.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatusGeneral).Methods(http.MethodPut)
	kine.HandleFunc("/appointments/{id}/comment", r.appointmentHandler.Complete).Methods(http.MethodPatch)

	// Schedules: reads for any authenticated user; writes restricted to
	// the clinician themself or an admin, enforced in the handler
	schedule := api.NewRoute().Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.HandleFunc("/kinesiologists/{id}/availability", r.availabilityHandler.List).Methods(http.MethodGet)
	schedule.HandleFunc("/kinesiologists/{id}/availability", r.availabilityHandler.Set).Methods(http.MethodPost)

	// Patient booking and history
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/kinesiologists/{id}/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	patient.HandleFunc("/patients/appointments/history", r.appointmentHandler.History).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
