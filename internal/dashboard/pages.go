package dashboard

import (
	"embed"
	"net/http"
)

//go:embed static/index.html static/unavailable.html
var pages embed.FS

// Pages serves the dashboard shell, or the error page when the data could
// not be loaded.
func Pages(available bool) http.Handler {
	name := "static/index.html"
	status := http.StatusOK
	if !available {
		name = "static/unavailable.html"
		status = http.StatusServiceUnavailable
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := pages.ReadFile(name)
		if err != nil {
			http.Error(w, "page not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
	})
}
