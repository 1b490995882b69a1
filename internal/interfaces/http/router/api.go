package router

import (
	"github.com/gin-gonic/gin"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/handler"
)

// Handlers bundles the handlers served under the API prefix
type Handlers struct {
	Auth      *handler.AuthHandler
	Reference *handler.ReferenceHandler
	Party     *handler.PartyHandler
	Design    *handler.DesignHandler
	Transport *handler.TransportHandler
	Order     *handler.OrderHandler
	Report    *handler.ReportHandler
	System    *handler.SystemHandler
}

// APIGroups returns the route groups of the orders API. Every group except
// login, registration and health runs behind the session middleware.
func APIGroups(h Handlers, session ...gin.HandlerFunc) []RouteRegistrar {
	login := NewDomainGroup("auth", "/auth").
		POST("/login", h.Auth.Login).
		POST("/register", h.Auth.Register)

	account := NewDomainGroup("account", "/auth").Use(session...).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	refdata := NewDomainGroup("reference", "/reference").Use(session...).
		GET("", h.Reference.Snapshot).
		POST("/refresh", h.Reference.RefreshAll).
		GET("/:resource", h.Reference.Get).
		POST("/:resource/refresh", h.Reference.Refresh)

	parties := NewDomainGroup("parties", "/parties").Use(session...).
		GET("", h.Party.List).
		POST("", h.Party.Create).
		PUT("/:id", h.Party.Update).
		DELETE("/:id", h.Party.Delete)

	designs := NewDomainGroup("designs", "/designs").Use(session...).
		GET("", h.Design.List).
		POST("", h.Design.Create).
		GET("/item-types", h.Design.ItemTypes).
		GET("/colors", h.Design.Colors).
		GET("/colors/grouped", h.Design.GroupedColors).
		PUT("/:id", h.Design.Update).
		DELETE("/:id", h.Design.Delete)

	transport := NewDomainGroup("transport", "/transport").Use(session...).
		GET("", h.Transport.List).
		POST("", h.Transport.Create).
		PUT("/:id", h.Transport.Update).
		DELETE("/:id", h.Transport.Delete)

	orders := NewDomainGroup("orders", "/orders").Use(session...).
		GET("", h.Order.List).
		POST("", h.Order.Create).
		GET("/options", h.Order.Options).
		GET("/:id", h.Order.Get).
		PUT("/:id", h.Order.Update).
		DELETE("/:id", h.Order.Delete).
		POST("/:id/complete", h.Order.Complete)

	reports := NewDomainGroup("reports", "/reports").Use(session...).
		POST("", h.Report.Build).
		POST("/export", h.Report.Export).
		GET("/exports", h.Report.History).
		GET("/formats", h.Report.Formats)

	system := NewDomainGroup("system", "").
		GET("/health", h.System.Health)

	return []RouteRegistrar{login, account, refdata, parties, designs, transport, orders, reports, system}
}
