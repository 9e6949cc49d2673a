// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	downloadfeature "github.com/omstools/importassist/internal/app/features/download"
	healthfeature "github.com/omstools/importassist/internal/app/features/health"
	processfeature "github.com/omstools/importassist/internal/app/features/process"
	uploadfeature "github.com/omstools/importassist/internal/app/features/upload"
	wizardfeature "github.com/omstools/importassist/internal/app/features/wizardapi"
	"github.com/omstools/importassist/internal/app/store/datasets"
	"github.com/omstools/importassist/internal/app/store/reviews"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The wizard session middleware
// wraps every data and wizard route so each browser gets pinned to its
// own upload; health stays outside it for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	datasetStore := datasets.New(deps.MongoDatabase, appCfg.DatasetTTL)
	reviewStore := reviews.New(deps.MongoDatabase, appCfg.ReviewTTL)
	svc := processfeature.NewService(datasetStore, reviewStore, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Everything below is scoped to the caller's wizard session.
	r.Group(func(r chi.Router) {
		r.Use(wizardMgr.LoadSession)

		uploadHandler := uploadfeature.NewHandler(datasetStore, logger)
		uploadfeature.Routes(r, uploadHandler)

		processHandler := processfeature.NewHandler(svc, logger)
		processfeature.Routes(r, processHandler)

		downloadHandler := downloadfeature.NewHandler(reviewStore, logger)
		downloadfeature.Routes(r, downloadHandler)

		wizardHandler := wizardfeature.NewHandler(svc, logger)
		r.Mount("/wizard", wizardfeature.Routes(wizardHandler))
	})

	return r, nil
}
