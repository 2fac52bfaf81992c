package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/config"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-engine/internal/app/endpoints"
	httptransport "github.com/ijalalfrz/flight-fare-engine/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1/flights", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.AccessLog(slog.Default()),
			httptransport.CORSMiddleware(cfg.HTTP.AllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		if cfg.HTTP.Timeout > 0 {
			router.Use(middleware.Timeout(cfg.HTTP.Timeout))
		}

		router.Post("/search", httptransport.MakeHandlerFunc(
			endpts.FlightSearchEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.SearchCriteria],
			httptransport.ResponseWithBody,
		))

		router.Post("/fare-rules", httptransport.MakeHandlerFunc(
			endpts.FlightSearchEndpoint.FareRules,
			httptransport.DecodeRequest[dto.FareRulesRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/fare-calendar", httptransport.MakeHandlerFunc(
			endpts.FareCalendarEndpoint.BuildFareCalendar,
			httptransport.DecodeRequest[dto.FareCalendarRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
