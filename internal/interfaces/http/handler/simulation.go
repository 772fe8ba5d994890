package handler

import (
	planningapp "github.com/alessandrv/FEC-mrp/internal/application/planning"
	"github.com/alessandrv/FEC-mrp/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SimulationHandler handles order simulation endpoints
type SimulationHandler struct {
	BaseHandler
	simulationService *planningapp.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(simulationService *planningapp.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		simulationService: simulationService,
	}
}

// SimulateOrder handles POST /simulate_order and POST /api/v1/planning/simulate.
// It explodes the ordered articles through their bills of materials and
// answers the projected availability of every component, most critical first.
func (h *SimulationHandler) SimulateOrder(c *gin.Context) {
	var req planningapp.SimulateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	results, err := h.simulationService.SimulateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, results)
}
