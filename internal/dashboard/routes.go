package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(svc *Service) http.Handler {
	r := chi.NewRouter()

	r.Get("/meta", svc.Meta)
	r.Get("/view", svc.View)
	r.Get("/export.xlsx", svc.Export)

	r.Route("/charts", func(r chi.Router) {
		r.Get("/facilities.png", svc.FacilityChart)
		r.Get("/trend.png", svc.TrendChart)
	})

	r.Get("/wetlands", svc.Wetlands)
	r.Get("/wetlands/table", svc.WetlandTable)
	r.Get("/regions/lookup", svc.LookupRegion)

	return r
}

// UnavailableRoutes serves 503 on every path.
func UnavailableRoutes() http.Handler {
	r := chi.NewRouter()
	r.HandleFunc("/*", Unavailable)
	return r
}
