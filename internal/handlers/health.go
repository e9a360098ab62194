package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ready checks if the service is ready to accept requests
// @Summary      Checks if the service is ready to accept requests
// @Description  Reports UP once the device store answers
// @Id           Ready
// @Tags         Health
// @Produce      json
// @Success      200
// @Failure      503
// @Router       /ready [get]
func (api *API) Ready(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Ready")
	defer span.End()

	if err := api.devices.Ping(ctx); err != nil {
		api.Logger(ctx).Warnw("device store is not ready", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
	})
}

// Live checks if the service is live
// @Summary      Checks if the service is live
// @Id           Live
// @Tags         Health
// @Produce      json
// @Success      200
// @Router       /live [get]
func (api *API) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
	})
}
