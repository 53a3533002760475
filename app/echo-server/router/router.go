package router

import (
	"myStorefront/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	customers := api.Group("/customers")

	customers.GET("", handler.GetAllCustomers)
	customers.GET("/:id", handler.GetCustomerByID)
	customers.POST("", handler.CreateCustomer, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("/:id", ordersHandler.GetOrderByID)

	api.GET("/customers/:customer_id/orders", ordersHandler.GetOrdersByCustomer, authRequired)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("/:customer_id", handler.GetRecommendations)
	reco.GET("/:customer_id/context", handler.GetRecommendationContext)
	reco.GET("/:customer_id/debug", handler.GetRecommendationDebug)

	api.POST("/customers/:id/recommendations", handler.AssistantRecommendations)
}
