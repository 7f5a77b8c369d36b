package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
)

type RouteHandler struct {
	routeService *services.RouteService
}

func NewRouteHandler(routeService *services.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// CreateRoute registers an origin/destination pair
// POST /api/v1/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	route, err := h.routeService.CreateRoute(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

// GetAllRoutes lists the route catalogue
// GET /api/v1/routes
func (h *RouteHandler) GetAllRoutes(c *gin.Context) {
	routes, err := h.routeService.GetAllRoutes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetRouteByID returns one route
// GET /api/v1/routes/:id
func (h *RouteHandler) GetRouteByID(c *gin.Context) {
	route, err := h.routeService.GetRouteByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// UpdateRoute changes route details
// PUT /api/v1/routes/:id
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	var req models.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	route, err := h.routeService.UpdateRoute(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route
// DELETE /api/v1/routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	route, err := h.routeService.DeleteRoute(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted", "route": route})
}
