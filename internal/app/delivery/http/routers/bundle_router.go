package routers

import (
	"ehr-bundle-service/internal/app/delivery/http/controllers"
	"ehr-bundle-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBundleRoutes(router chi.Router, middlewares *middlewares.Middlewares, bundleController *controllers.BundleController) {
	router.With(middlewares.Authenticate, middlewares.IngestQuota).Post("/", bundleController.IngestBundle)
	router.Post("/validate", bundleController.ValidateBundle)
	router.Get("/", bundleController.ListBundleIDs)
	router.Get("/search", bundleController.SearchBundles)
	router.Get("/stats", bundleController.GetStatistics)
	router.Get("/{bundleID}", bundleController.FindBundleByID)
	router.Get("/{bundleID}/report", bundleController.RenderBundleReport)
	router.With(middlewares.Authenticate).Get("/{bundleID}/archive", bundleController.RestoreBundleArchive)
	router.With(middlewares.Authenticate).Delete("/{bundleID}", bundleController.DeleteBundleByID)
}
