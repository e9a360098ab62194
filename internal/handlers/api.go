package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lalitbiswal91/device-management/internal/devices"
	"github.com/lalitbiswal91/device-management/internal/models"
	"github.com/lalitbiswal91/device-management/internal/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/lalitbiswal91/device-management/internal/handlers")
}

// DeviceService is the device logic the handlers expose over http.
type DeviceService interface {
	Add(ctx context.Context, request models.AddDevice) (*models.Device, error)
	Get(ctx context.Context, id uint64) (*models.Device, error)
	List(ctx context.Context) ([]*models.Device, error)
	Update(ctx context.Context, id uint64, request models.UpdateDevice) (*models.Device, error)
	Delete(ctx context.Context, id uint64) error
	SearchByBrand(ctx context.Context, brand string) ([]*models.Device, error)
	Ping(ctx context.Context) error
}

var _ DeviceService = (*devices.Service)(nil)

type API struct {
	logger  *zap.SugaredLogger
	devices DeviceService
}

func NewAPI(parent context.Context, logger *zap.SugaredLogger, devices DeviceService) (*API, error) {
	_, span := tracer.Start(parent, "NewAPI")
	defer span.End()

	if err := registerValidators(); err != nil {
		return nil, err
	}
	return &API{
		logger:  logger,
		devices: devices,
	}, nil
}

func (api *API) Logger(ctx context.Context) *zap.SugaredLogger {
	return util.WithTrace(ctx, api.logger)
}

// sendError writes the response matching err: the carried status and body of
// an ApiResponseError, a 404 for a missing device, and a 500 otherwise.
func (api *API) sendError(c *gin.Context, err error) {
	var apiResponseError *ApiResponseError
	var notFound devices.NotFoundError
	switch {
	case errors.As(err, &apiResponseError):
		c.JSON(apiResponseError.Status, apiResponseError.Body)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, models.NewNotFoundError("device", notFound.Error()))
	default:
		api.SendInternalServerError(c, err)
	}
}

func (api *API) SendInternalServerError(c *gin.Context, err error) {
	SendInternalServerError(c, api.logger, err)
}

// SendInternalServerError logs err and answers with a 500 carrying the message
// of the innermost wrapped error and the request trace id.
func SendInternalServerError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	ctx := c.Request.Context()
	util.WithTrace(ctx, logger).Errorw("internal server error", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewInternalServerError(rootCause(err).Error(), util.TraceID(ctx)))
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// deviceID parses the id path parameter, which must be a positive integer
// that fits a signed 64 bit database column.
func deviceID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		return 0, NewApiResponseError(http.StatusBadRequest, models.NewBadPathParameterError("id"))
	}
	return id, nil
}
