package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/shared/middleware"
	"biblioteca-console/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.LoadSession(c.Sessions, c.Config.Session.CookieName),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupDashboardRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupMemberRoutes(v1, c)
		setupLoanRoutes(v1, c)
		setupFineRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/registro", c.AuthHandler.Register)
		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/me", middleware.RequireSession(), c.AuthHandler.Me)
	}
}

func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/dashboard", middleware.RequireSession(), c.DashboardHandler.Summary)
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categorias")
	categories.Use(middleware.RequireSession())
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/buscar", c.CategoryHandler.Search)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.POST("", c.CategoryHandler.Create)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/libros")
	books.Use(middleware.RequireSession())
	{
		books.GET("", c.BookHandler.List)
		books.GET("/disponibles", c.BookHandler.Available)
		books.GET("/buscar", c.BookHandler.Search)
		books.GET("/formulario", c.BookHandler.FormData)
		books.GET("/estado/:estado", c.BookHandler.ByState)
		books.GET("/:id", c.BookHandler.Get)
		books.GET("/:id/disponible", c.BookHandler.CheckAvailability)
		books.POST("", c.BookHandler.Create)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupMemberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	members := v1.Group("/socios")
	members.Use(middleware.RequireSession())
	{
		members.GET("", c.MemberHandler.List)
		members.GET("/buscar", c.MemberHandler.Search)
		members.GET("/dni/:dni", c.MemberHandler.ByDNI)
		members.GET("/numero/:numero", c.MemberHandler.ByNumber)
		members.GET("/:id", c.MemberHandler.Get)
		members.GET("/:id/prestamos-activos", c.MemberHandler.HasActiveLoans)
		members.POST("", c.MemberHandler.Create)
		members.PUT("/:id", c.MemberHandler.Update)
		members.DELETE("/:id", c.MemberHandler.Delete)
	}
}

func setupLoanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loans := v1.Group("/prestamos")
	loans.Use(middleware.RequireSession())
	{
		loans.GET("", c.LoanHandler.List)
		loans.GET("/activos", c.LoanHandler.Active)
		loans.GET("/retraso", c.LoanHandler.Overdue)
		loans.GET("/formulario", c.LoanHandler.FormData)
		loans.GET("/estados-devolucion", c.LoanHandler.Grades)
		loans.GET("/calcular-fecha", c.LoanHandler.DueDate)
		loans.GET("/socio/:id/activos", c.LoanHandler.ActiveByMember)
		loans.GET("/:id", c.LoanHandler.Get)
		loans.POST("", c.LoanHandler.Create)
		loans.PUT("/:id/devolucion", c.LoanHandler.Return)
		loans.PUT("/:id/renovar", c.LoanHandler.Renew)
	}
}

func setupFineRoutes(v1 *gin.RouterGroup, c *container.Container) {
	fines := v1.Group("/multas")
	fines.Use(middleware.RequireSession())
	{
		fines.GET("", c.FineHandler.List)
		fines.GET("/activas", c.FineHandler.Active)
		fines.GET("/motivos", c.FineHandler.Reasons)
		fines.GET("/sugerencias/:id", c.FineHandler.Suggestions)
		fines.GET("/socio/:id/activas", c.FineHandler.ActiveByMember)
		fines.GET("/socio/:id/total-pendiente", c.FineHandler.PendingTotal)
		fines.GET("/socio/:id/tiene-pendientes", c.FineHandler.HasPending)
		fines.GET("/:id", c.FineHandler.Get)
		fines.POST("", c.FineHandler.Create)
		fines.POST("/prestamo/:id/generar", c.FineHandler.Generate)
		fines.PUT("/:id/pagar", c.FineHandler.Pay)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		redisStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
			health["status"] = "degraded"
		}
		health["services"] = gin.H{"redis": redisStatus}

		c.JSON(http.StatusOK, health)
	}
}
