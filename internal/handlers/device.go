package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalitbiswal91/device-management/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateDevice handles adding a new device
// @Summary      Add Device
// @Description  Adds a new device, the server assigns its id and creation time
// @Id           CreateDevice
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Param        device  body   models.AddDevice  true "Add Device"
// @Success      200  {object}  models.Device
// @Failure      400  {object}  models.ValidationErrors
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/add-device [post]
func (api *API) CreateDevice(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "CreateDevice")
	defer span.End()

	var request models.AddDevice
	if err := c.ShouldBindJSON(&request); err != nil {
		api.sendError(c, bindError(err))
		return
	}

	device, err := api.devices.Add(ctx, request)
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// GetDevice gets a device by ID
// @Summary      Get Device
// @Description  Gets a device by ID, answers 204 when there is no such device
// @Id           GetDevice
// @Tags         Devices
// @Produce      json
// @Param        id   path      integer  true "Device ID"
// @Success      200  {object}  models.Device
// @Success      204
// @Failure      400  {object}  models.ValidationErrors
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/{id} [get]
func (api *API) GetDevice(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetDevice",
		trace.WithAttributes(
			attribute.String("id", c.Param("id")),
		))
	defer span.End()

	id, err := deviceID(c)
	if err != nil {
		api.sendError(c, err)
		return
	}

	device, err := api.devices.Get(ctx, id)
	if err != nil {
		api.sendError(c, err)
		return
	}
	if device == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, device)
}

// ListDevices lists all devices
// @Summary      List Devices
// @Description  Lists all devices
// @Id           ListDevices
// @Tags         Devices
// @Produce      json
// @Success      200  {object}  []models.Device
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/all-devices [get]
func (api *API) ListDevices(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "ListDevices")
	defer span.End()

	devices, err := api.devices.List(ctx)
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// UpdateDevice updates a Device
// @Summary      Update Device
// @Description  Sets the name and/or brand of a device, omitted fields are left unchanged
// @Id           UpdateDevice
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Param        id      path   integer  true "Device ID"
// @Param        update  body   models.UpdateDevice true "Device Update"
// @Success      200  {object}  models.Device
// @Failure      400  {object}  models.ValidationErrors
// @Failure      404  {object}  models.NotFoundError
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/{id} [put]
func (api *API) UpdateDevice(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "UpdateDevice",
		trace.WithAttributes(
			attribute.String("id", c.Param("id")),
		))
	defer span.End()

	id, err := deviceID(c)
	if err != nil {
		api.sendError(c, err)
		return
	}

	var request models.UpdateDevice
	if err := c.ShouldBindJSON(&request); err != nil {
		api.sendError(c, bindError(err))
		return
	}

	device, err := api.devices.Update(ctx, id, request)
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// DeleteDevice handles deleting an existing device
// @Summary      Delete Device
// @Description  Deletes a device, deleting a missing device succeeds
// @Id           DeleteDevice
// @Tags         Devices
// @Param        id   path      integer  true "Device ID"
// @Success      200
// @Failure      400  {object}  models.ValidationErrors
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/{id} [delete]
func (api *API) DeleteDevice(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "DeleteDevice",
		trace.WithAttributes(
			attribute.String("id", c.Param("id")),
		))
	defer span.End()

	id, err := deviceID(c)
	if err != nil {
		api.sendError(c, err)
		return
	}

	if err := api.devices.Delete(ctx, id); err != nil {
		api.sendError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// SearchDevices finds devices by brand
// @Summary      Search Devices
// @Description  Lists the devices whose brand matches exactly, case sensitive
// @Id           SearchDevices
// @Tags         Devices
// @Produce      json
// @Param        brand  query   string  true "Brand"
// @Success      200  {object}  []models.Device
// @Failure      400  {object}  models.ValidationErrors
// @Failure      500  {object}  models.InternalServerError
// @Router       /api/devices/search [get]
func (api *API) SearchDevices(c *gin.Context) {
	brand, found := c.GetQuery("brand")
	ctx, span := tracer.Start(c.Request.Context(), "SearchDevices",
		trace.WithAttributes(
			attribute.String("brand", brand),
		))
	defer span.End()

	if !found {
		api.sendError(c, NewApiResponseError(http.StatusBadRequest, models.NewQueryParameterRequiredError("brand")))
		return
	}

	devices, err := api.devices.SearchByBrand(ctx, brand)
	if err != nil {
		api.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}
