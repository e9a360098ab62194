package routers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/lalitbiswal91/device-management/internal/docs"
	"github.com/lalitbiswal91/device-management/internal/handlers"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const name = "github.com/lalitbiswal91/device-management/internal/routers"

type APIRouterOptions struct {
	Logger *zap.SugaredLogger
	Api    *handlers.API
	// Origins allowed to make cross origin requests, CORS is off when empty.
	Origins []string
}

func NewAPIRouter(ctx context.Context, o APIRouterOptions) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	loggerMiddleware := ginzap.GinzapWithConfig(o.Logger.Desugar(), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("traceID", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
			}
		},
	})

	r.Use(otelgin.Middleware(name, otelgin.WithPropagators(
		propagation.TraceContext{},
	)))
	r.Use(ginzap.CustomRecoveryWithZap(o.Logger.Desugar(), true, func(c *gin.Context, err any) {
		handlers.SendInternalServerError(c, o.Logger, fmt.Errorf("panic: %v", err))
	}))

	if len(o.Origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = o.Origins
		if err := corsConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid cors origins: %w", err)
		}
		r.Use(cors.New(corsConfig))
	}

	newPrometheus().Use(r)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/openapi/*any", ginSwagger.WrapHandler(swaggerFiles.Handler), loggerMiddleware)

	devices := r.Group("/api/devices", loggerMiddleware)
	{
		api := o.Api
		devices.POST("/add-device", api.CreateDevice)
		devices.GET("/all-devices", api.ListDevices)
		devices.GET("/search", api.SearchDevices)
		devices.GET("/:id", api.GetDevice)
		devices.PUT("/:id", api.UpdateDevice)
		devices.DELETE("/:id", api.DeleteDevice)
	}

	// Don't log the health/readiness checks.
	r.GET("/ready", o.Api.Ready)
	r.GET("/live", o.Api.Live)

	return r, nil
}

func newPrometheus() *ginprometheus.Prometheus {
	p := ginprometheus.NewPrometheus("apiserver")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := c.Request.URL.Path
		for _, p := range c.Params {
			if p.Key == "id" {
				url = strings.Replace(url, p.Value, ":id", 1)
				break
			}
		}
		return url
	}
	return p
}
