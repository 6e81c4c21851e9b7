package router

import (
	"net/http"

	"github.com/senyabanana/procurement-service/internal/handlers"
	"github.com/senyabanana/procurement-service/internal/logger"
	"github.com/senyabanana/procurement-service/internal/metrics"
	"github.com/senyabanana/procurement-service/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers - обработчики, которые подключает InitRoutes.
type Handlers struct {
	RFPs      *handlers.RFPHandler
	Vendors   *handlers.VendorHandler
	Proposals *handlers.ProposalHandler
}

// InitRoutes собирает роутер API. При gatherer == nil /metrics не подключается.
func InitRoutes(h Handlers, logg *logger.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(
		Recoverer(logg),
		RequestID(logg),
		Logging(logg, m),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.SendErrorResponse(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.SendErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.PingHandler)
		r.Get("/dashboard", h.RFPs.GetDashboard)
		r.Post("/extract", h.RFPs.ExtractRFP)

		r.Route("/rfps", func(r chi.Router) {
			r.Get("/", h.RFPs.GetRFPs)
			r.Post("/", h.RFPs.CreateRFP)

			r.Route("/{rfpId}", func(r chi.Router) {
				r.Get("/", h.RFPs.GetRFP)
				r.Patch("/", h.RFPs.EditRFP)
				r.Delete("/", h.RFPs.DeleteRFP)
				r.Post("/send", h.RFPs.SendRFP)
				r.Put("/complete", h.RFPs.CompleteRFP)
				r.Get("/proposals", h.Proposals.GetProposals)
				r.Post("/proposals", h.Proposals.CreateProposal)
				r.Get("/comparison", h.Proposals.GetComparison)
			})
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.Vendors.GetVendors)
			r.Post("/", h.Vendors.CreateVendor)
			r.Get("/{vendorId}", h.Vendors.GetVendor)
			r.Patch("/{vendorId}", h.Vendors.EditVendor)
			r.Delete("/{vendorId}", h.Vendors.DeleteVendor)
		})
	})

	return r
}
