package httpapi

import (
	"sepet-be/internal/category"
	"sepet-be/internal/middleware"
	"sepet-be/internal/order"
	"sepet-be/internal/product"
	"sepet-be/internal/user"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the REST surface. Public routes carry the general
// rate tier; /register and /login get the strict one. [auth] routes
// require a valid token, /admin mutations additionally require the
// admin role.
func NewRouter(
	userSvc user.Service,
	productSvc product.Service,
	categorySvc category.Service,
	orderSvc order.Service,
) *gin.Engine {
	userHandler := NewUserHandler(userSvc)
	productHandler := NewProductHandler(productSvc)
	categoryHandler := NewCategoryHandler(categorySvc)
	orderHandler := NewOrderHandler(orderSvc)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CORS(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RateLimit(middleware.LimitGeneral, middleware.BurstGeneral),
	)

	strict := middleware.RateLimit(middleware.LimitStrict, middleware.BurstStrict)
	r.POST("/register", strict, userHandler.Register)
	r.POST("/login", strict, userHandler.Login)

	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.GetByID)
	r.GET("/admin/category", categoryHandler.List)

	auth := r.Group("/", middleware.AuthGuard())
	{
		auth.POST("/cart/add", orderHandler.AddToCart)
		auth.POST("/cart/remove", orderHandler.RemoveFromCart)
		auth.POST("/orders", orderHandler.Checkout)
		auth.PUT("/orders", orderHandler.UpdateAddress)
		auth.GET("/profile/:userId", userHandler.Profile)
		auth.PUT("/users/:id", userHandler.UpdateProfile)
	}

	admin := r.Group("/", middleware.AdminAuth())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.GET("/admin/orders", orderHandler.ListForAdmin)
		admin.DELETE("/admin/orders/:id", orderHandler.Delete)
		admin.POST("/admin/orders/:id/status", orderHandler.UpdateStatus)
		admin.POST("/admin/orders/:id/details", orderHandler.UpdateDetails)
		admin.GET("/admin/users", userHandler.ListNonAdmin)
		admin.POST("/admin/category", categoryHandler.Create)
	}

	return r
}
