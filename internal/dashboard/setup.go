package dashboard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/rbc-health/malaria-dashboard/internal/dataset"
)

// Init loads the dataset once and returns the API and page handlers. When
// loading fails both serve the data-unavailable state for the lifetime of
// the process.
func Init(ctx context.Context, loader *dataset.Loader, log *zap.Logger) (api, page http.Handler) {
	store, err := loader.Load(ctx)
	if err != nil {
		return UnavailableRoutes(), Pages(false)
	}
	return SetupRoutes(NewService(store, log)), Pages(true)
}
