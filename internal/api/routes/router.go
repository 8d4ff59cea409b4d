package routes

import (
	"net/http"

	"github.com/dateplanhq/dateplan/backend/internal/api/handlers"
	"github.com/dateplanhq/dateplan/backend/internal/api/middleware"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	parseLinkHandler *handlers.ParseLinkHandler
	activityHandler  *handlers.ActivityHandler
	calendarHandler  *handlers.CalendarHandler
	historyHandler   *handlers.HistoryHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	parseLinkHandler *handlers.ParseLinkHandler,
	activityHandler *handlers.ActivityHandler,
	calendarHandler *handlers.CalendarHandler,
	historyHandler *handlers.HistoryHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		parseLinkHandler: parseLinkHandler,
		activityHandler:  activityHandler,
		calendarHandler:  calendarHandler,
		historyHandler:   historyHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Link parsing endpoint
	r.mux.HandleFunc("POST /api/parse-link", r.parseLinkHandler.ParseLink)

	// Activity endpoints
	r.mux.HandleFunc("GET /api/activities", r.activityHandler.ListActivities)
	r.mux.HandleFunc("POST /api/activities", r.activityHandler.CreateActivity)
	r.mux.HandleFunc("GET /api/activities/categories/all", r.activityHandler.ListCategories)
	r.mux.HandleFunc("GET /api/activities/{id}", r.activityHandler.GetActivity)
	r.mux.HandleFunc("PUT /api/activities/{id}", r.activityHandler.UpdateActivity)
	r.mux.HandleFunc("DELETE /api/activities/{id}", r.activityHandler.DeleteActivity)

	// Calendar endpoints
	r.mux.HandleFunc("GET /api/calendar", r.calendarHandler.ListEvents)
	r.mux.HandleFunc("POST /api/calendar", r.calendarHandler.CreateEvent)
	r.mux.HandleFunc("GET /api/calendar/{id}", r.calendarHandler.GetEvent)
	r.mux.HandleFunc("PUT /api/calendar/{id}", r.calendarHandler.UpdateEvent)
	r.mux.HandleFunc("DELETE /api/calendar/{id}", r.calendarHandler.DeleteEvent)
	r.mux.HandleFunc("PATCH /api/calendar/{id}/complete", r.calendarHandler.CompleteEvent)

	// History endpoints
	r.mux.HandleFunc("GET /api/history", r.historyHandler.ListHistory)
	r.mux.HandleFunc("POST /api/history", r.historyHandler.CreateHistory)
	r.mux.HandleFunc("GET /api/history/{id}", r.historyHandler.GetHistory)
	r.mux.HandleFunc("DELETE /api/history/{id}", r.historyHandler.DeleteHistory)
	r.mux.HandleFunc("POST /api/history/{id}/move-to-ideas", r.historyHandler.MoveToIdeas)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.CORSMiddleware(handler)

	return handler
}
