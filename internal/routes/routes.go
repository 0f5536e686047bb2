package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sakado_back_end/internal/handlers"
	"sakado_back_end/internal/handlers/admin"
	"sakado_back_end/internal/handlers/seller"
	"sakado_back_end/internal/handlers/storefront"
	"sakado_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS : origines front depuis .env, séparées par des virgules
	origins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 1 && origins[0] == "" {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// ---------- Boutique (public) ----------
	api.GET("/products", storefront.ListProducts)
	api.GET("/products/search", storefront.SearchCatalog)
	api.GET("/products/:id", storefront.GetProductByID)
	api.GET("/categories", storefront.ListCategories)
	api.GET("/homepage", storefront.GetHomepage)

	// Auth client
	api.POST("/auth/register", middleware.RegisterRateLimit(), storefront.RegisterCustomer)
	api.POST("/auth/login", middleware.LoginRateLimit(), storefront.LoginCustomer)
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)

	// Webhook Stripe (signé, pas de JWT)
	api.POST("/stripe/webhook", storefront.StripeWebhook)

	// ---------- Boutique (client connecté) ----------
	shop := api.Group("")
	shop.Use(middleware.AuthRequired())
	{
		shop.GET("/cart", storefront.GetCart)
		shop.POST("/cart/add", storefront.AddToCart)
		shop.DELETE("/cart/clear", storefront.ClearCart)
		shop.DELETE("/cart/:productId", storefront.RemoveFromCart)
		shop.GET("/cart/ws", storefront.CartWebSocket)

		shop.POST("/checkout", storefront.Checkout)

		shop.GET("/orders", storefront.GetMyOrders)
		shop.GET("/orders/:id", storefront.GetOrderByID)
		shop.POST("/orders/:id/cancel", storefront.CancelMyOrder)

		shop.POST("/returns", storefront.CreateReturn)
		shop.GET("/returns", storefront.GetMyReturns)
	}

	// ---------- Portail vendeur ----------
	api.POST("/seller/auth/register", middleware.RegisterRateLimit(), seller.Register)
	api.POST("/seller/auth/login", middleware.LoginRateLimit(), seller.Login)

	sl := api.Group("/seller")
	sl.Use(middleware.AuthRequired(), middleware.RequireSeller)
	{
		sl.GET("/products", seller.ListMyProducts)
		sl.POST("/products", seller.CreateProduct)
		sl.PUT("/products/:id", seller.UpdateProduct)
		sl.DELETE("/products/:id", seller.DeleteProduct)
		sl.POST("/products/:id/images", seller.UploadProductImage)
		sl.POST("/products/:id/stock", seller.AdjustProductStock)
		sl.GET("/products/:id/movements", seller.ListStockMovements)
		sl.GET("/stock/alerts", seller.LowStockAlerts)

		sl.GET("/orders", seller.ListMyOrders)
		sl.PUT("/orders/:id/status", seller.UpdateOrderStatus)
		sl.GET("/orders/:id/invoice", seller.DownloadInvoice)

		sl.GET("/returns", seller.ListMyReturns)
		sl.PUT("/returns/:id/decision", seller.DecideReturn)
		sl.POST("/returns/:id/complete", seller.CompleteReturn)

		sl.GET("/payments", seller.GetPaymentHistory)
		sl.GET("/payments/ws", seller.PaymentsWebSocket)

		sl.GET("/dashboard", seller.GetDashboardStats)
	}

	// ---------- Back office ----------
	api.POST("/admin/auth/login", middleware.LoginRateLimit(), admin.Login)

	ad := api.Group("/admin")
	ad.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		ad.GET("/sellers", admin.ListSellers)
		ad.POST("/sellers/:id/approve", admin.ApproveSeller)
		ad.POST("/sellers/:id/deactivate", admin.DeactivateSeller)
		ad.POST("/sellers/:id/reactivate", admin.ReactivateSeller)
		ad.DELETE("/sellers/:id", admin.DeleteSeller)

		ad.GET("/orders", admin.ListOrders)
		ad.GET("/orders/:id", admin.GetOrder)
		ad.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		ad.DELETE("/orders/:id", admin.DeleteOrder)

		ad.GET("/payments", admin.ListPayments)
		ad.POST("/payments", admin.CreatePayment)
		ad.PUT("/payments/:id/status", admin.UpdatePaymentStatus)

		ad.GET("/categories", admin.ListCategories)
		ad.POST("/categories", admin.CreateCategory)
		ad.PUT("/categories/:id", admin.UpdateCategory)
		ad.DELETE("/categories/:id", admin.DeleteCategory)

		ad.GET("/homepage", admin.ListHomepageSections)
		ad.POST("/homepage", admin.CreateHomepageSection)
		ad.PUT("/homepage/:id", admin.UpdateHomepageSection)
		ad.DELETE("/homepage/:id", admin.DeleteHomepageSection)
	}
}
