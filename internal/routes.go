package internal

import (
	"gatewatch/internal/controllers"
	"gatewatch/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/vehicles", http.HandlerFunc(apiController.GetActiveVehicles))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	return routers
}
