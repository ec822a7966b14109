package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/media"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/search"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
)

// Deps bundles everything the router needs.
type Deps struct {
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Cart      *service.CartService
	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Media     *media.Service
	Search    *search.Client
	Repo      *repo.GormRepo

	LowStockThreshold int
}

// Register wires every route onto the echo instance.
func Register(e *echo.Echo, d Deps) {
	catalog := &CatalogHandler{Svc: d.Catalog}
	orders := &OrderHandler{Svc: d.Orders}
	carts := &CartHandler{Svc: d.Cart}
	auth := &AuthHandler{Svc: d.Auth}
	dashboard := &DashboardHandler{Svc: d.Dashboard}
	mediaH := &MediaHandler{Svc: d.Media}
	searchH := &SearchHandler{Client: d.Search}
	inventory := &InventoryHandler{Repo: d.Repo, DefaultThreshold: d.LowStockThreshold}
	authMW := &AuthMiddleware{Auth: d.Auth}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api")

	// Public catalog reads.
	api.GET("/colors", catalog.ListBaseColors)
	api.GET("/colors/:id", catalog.GetBaseColor)
	api.GET("/keycaps", catalog.ListKeycapDesigns)
	api.GET("/keycaps/:id", catalog.GetKeycapDesign)
	api.GET("/switches", catalog.ListSwitchTypes)
	api.GET("/switches/:id", catalog.GetSwitchType)
	api.GET("/prebuilt", catalog.ListPrebuiltFidgets)
	api.GET("/prebuilt/:id", catalog.GetPrebuiltFidget)
	api.GET("/other-fidgets", catalog.ListOtherFidgets)
	api.GET("/other-fidgets/:id", catalog.GetOtherFidget)
	api.GET("/images", catalog.ListImages)
	api.GET("/search", searchH.Search)

	// Checkout.
	api.POST("/orders", orders.Create)

	// Cart, keyed by the opaque session header.
	cart := api.Group("/cart", CartSession)
	cart.GET("", carts.Get)
	cart.POST("/items", carts.AddLine)
	cart.PATCH("/items/:lineID", carts.UpdateLine)
	cart.DELETE("/items/:lineID", carts.RemoveLine)
	cart.DELETE("", carts.Clear)

	// Admin authentication entry points.
	api.POST("/admin/setup", auth.Setup)
	api.POST("/admin/login", auth.Login)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/me", auth.Me)
	admin.POST("/logout", auth.Logout)
	admin.POST("/register", auth.Register, authMW.RequireSuperAdmin)

	// Catalog writes.
	admin.POST("/colors", catalog.CreateBaseColor)
	admin.PATCH("/colors/:id", catalog.PatchBaseColor)
	admin.DELETE("/colors/:id", catalog.DeleteBaseColor)
	admin.POST("/keycaps", catalog.CreateKeycapDesign)
	admin.PATCH("/keycaps/:id", catalog.PatchKeycapDesign)
	admin.DELETE("/keycaps/:id", catalog.DeleteKeycapDesign)
	admin.POST("/switches", catalog.CreateSwitchType)
	admin.PATCH("/switches/:id", catalog.PatchSwitchType)
	admin.DELETE("/switches/:id", catalog.DeleteSwitchType)
	admin.POST("/prebuilt", catalog.CreatePrebuiltFidget)
	admin.PATCH("/prebuilt/:id", catalog.PatchPrebuiltFidget)
	admin.DELETE("/prebuilt/:id", catalog.DeletePrebuiltFidget)
	admin.POST("/other-fidgets", catalog.CreateOtherFidget)
	admin.PATCH("/other-fidgets/:id", catalog.PatchOtherFidget)
	admin.DELETE("/other-fidgets/:id", catalog.DeleteOtherFidget)

	// Item images and uploads.
	admin.POST("/images", catalog.AddImage)
	admin.DELETE("/images/:id", catalog.DeleteImage)
	admin.POST("/media/upload", mediaH.Upload)
	admin.DELETE("/media", mediaH.Delete)

	// Inventory.
	admin.GET("/inventory", inventory.Levels)
	admin.GET("/inventory/low-stock", inventory.LowStock)
	admin.PUT("/inventory/:category/:id", inventory.AdjustStock)

	// Order management.
	admin.GET("/orders", orders.List)
	admin.GET("/orders/:id", orders.Get)
	admin.PATCH("/orders/:id/status", orders.UpdateStatus)
	admin.POST("/orders/:id/recalculate-profit", orders.RecalculateProfit)
	admin.DELETE("/orders/:id", orders.Delete, authMW.RequireSuperAdmin)

	admin.GET("/dashboard", dashboard.Stats)
}
