package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/GolpiraElmiA/OSRTickets/api"
	"github.com/GolpiraElmiA/OSRTickets/internal/handler"
)

const (
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathSwagger = "/swagger"
)

func New(ticketHandler *handler.TicketHandler, healthHandler *handler.HealthHandler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(pathHealth, healthHandler.Health)
	r.GET(pathReady, healthHandler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/tickets", ticketHandler.Submit)
		v1.GET("/tickets", ticketHandler.List)
		v1.PUT("/tickets/:id/status", ticketHandler.UpdateStatus)
		v1.PUT("/tickets", ticketHandler.BulkReplace)
		v1.POST("/tickets/reset", ticketHandler.Reset)
		v1.GET("/insights", ticketHandler.Insights)
	}

	return r
}
