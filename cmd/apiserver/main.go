package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lalitbiswal91/device-management/internal/devices"
	"github.com/lalitbiswal91/device-management/internal/handlers"
	"github.com/lalitbiswal91/device-management/internal/routers"
	"github.com/lalitbiswal91/device-management/internal/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.18.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/credentials"

	"github.com/urfave/cli/v3"
)

var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("apiserver")
}

// @title               Device Management API
// @description         Stores devices and lets clients add, read, update, delete and search them by brand.
// @version             1.0
// @license.name        Apache 2.0
// @license.url         http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath            /

// @tag.name            Devices
// @tag.description     Device inventory
// @tag.name            Health
// @tag.description     Liveness and readiness probes
func main() {
	// Override to capitalize "Show"
	cli.HelpFlag.(*cli.BoolFlag).Usage = "Show help"
	app := &cli.Command{
		Name:  "apiserver",
		Usage: "Serves the device management REST api",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Value:   false,
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEVAPI_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "listen",
				Value:   "0.0.0.0:8080",
				Usage:   "The address and port to listen for HTTP requests on",
				Sources: cli.EnvVars("DEVAPI_LISTEN"),
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   storePostgres,
				Usage:   fmt.Sprintf("Device store backend, one of %v", storeKinds),
				Sources: cli.EnvVars("DEVAPI_STORE"),
			},
			&cli.StringFlag{
				Name:    "db-host",
				Value:   "apiserver-db",
				Usage:   "Database host name",
				Sources: cli.EnvVars("DEVAPI_DB_HOST"),
			},
			&cli.StringFlag{
				Name:    "db-port",
				Value:   "5432",
				Usage:   "Database port",
				Sources: cli.EnvVars("DEVAPI_DB_PORT"),
			},
			&cli.StringFlag{
				Name:    "db-user",
				Value:   "apiserver",
				Usage:   "Database user",
				Sources: cli.EnvVars("DEVAPI_DB_USER"),
			},
			&cli.StringFlag{
				Name:    "db-password",
				Value:   "secret",
				Usage:   "Database password",
				Sources: cli.EnvVars("DEVAPI_DB_PASSWORD"),
			},
			&cli.StringFlag{
				Name:    "db-name",
				Value:   "devices",
				Usage:   "Database name",
				Sources: cli.EnvVars("DEVAPI_DB_NAME"),
			},
			&cli.StringFlag{
				Name:    "db-sslmode",
				Value:   "disable",
				Usage:   "Database ssl mode",
				Sources: cli.EnvVars("DEVAPI_DB_SSLMODE"),
			},
			&cli.StringFlag{
				Name:    "sqlite-path",
				Value:   "devices.db",
				Usage:   "Database file used by the sqlite store",
				Sources: cli.EnvVars("DEVAPI_SQLITE_PATH"),
			},
			&cli.StringFlag{
				Name:    "bolt-path",
				Value:   "devices.bolt",
				Usage:   "Database file used by the bolt store",
				Sources: cli.EnvVars("DEVAPI_BOLT_PATH"),
			},
			&cli.StringSliceFlag{
				Name:    "origins",
				Usage:   "Origins allowed to make cross origin requests",
				Sources: cli.EnvVars("DEVAPI_ORIGINS"),
			},
			&cli.BoolFlag{
				Name:    "trace-insecure",
				Value:   false,
				Usage:   "Set OTLP endpoint to insecure mode",
				Sources: cli.EnvVars("DEVAPI_TRACE_INSECURE"),
			},
			&cli.StringFlag{
				Name:    "trace-endpoint",
				Value:   "",
				Usage:   "OTLP endpoint for trace data",
				Sources: cli.EnvVars("DEVAPI_TRACE_ENDPOINT_OTLP"),
			},
		},

		Action: func(ctx context.Context, command *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
			defer stop()
			ctx, span := tracer.Start(ctx, "Run")
			defer span.End()

			return withLogger(ctx, command, func(logger *zap.Logger) error {
				pprof_init(ctx, command, logger)

				store, err := openStore(ctx, logger.Sugar(), newStoreConfig(command))
				if err != nil {
					return err
				}
				defer util.LogError(logger.Sugar(), "closing device store", store.Close)

				service := devices.NewService(logger.Sugar(), store)
				api, err := handlers.NewAPI(ctx, logger.Sugar(), service)
				if err != nil {
					return err
				}

				router, err := routers.NewAPIRouter(ctx, routers.APIRouterOptions{
					Logger:  logger.Sugar(),
					Api:     api,
					Origins: command.StringSlice("origins"),
				})
				if err != nil {
					return err
				}

				httpServer := &http.Server{
					Addr:              command.String("listen"),
					Handler:           router,
					ReadTimeout:       5 * time.Second,
					ReadHeaderTimeout: 5 * time.Second,
					WriteTimeout:      10 * time.Second,
				}
				defer util.IgnoreError(httpServer.Close)

				wg := &sync.WaitGroup{}
				serveErrors := make(chan error, 1)
				util.GoWithWaitGroup(wg, func() {
					logger.Sugar().Infow("serving http", "address", httpServer.Addr, "store", command.String("store"))
					if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
						serveErrors <- err
					}
				})

				// Wait for a shutdown signal or a server error
				select {
				case err = <-serveErrors:
				case <-ctx.Done():
				}

				// Try to do a graceful shutdown of the server for 5 seconds...
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
					logger.Sugar().Warnw("http server did not shut down gracefully", "error", serr)
				}
				wg.Wait()
				return err
			})
		},
	}
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "rollback",
		Usage: "Rollback the last database migration",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Rollback every migration",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return withLogger(ctx, command, func(logger *zap.Logger) error {
				return rollbackSQL(ctx, logger.Sugar(), newStoreConfig(command), command.Bool("all"))
			})
		},
	})

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newStoreConfig(command *cli.Command) storeConfig {
	return storeConfig{
		Kind:       command.String("store"),
		DBHost:     command.String("db-host"),
		DBPort:     command.String("db-port"),
		DBUser:     command.String("db-user"),
		DBPassword: command.String("db-password"),
		DBName:     command.String("db-name"),
		DBSSLMode:  command.String("db-sslmode"),
		SqlitePath: command.String("sqlite-path"),
		BoltPath:   command.String("bolt-path"),
	}
}

func getLogger(command *cli.Command) *zap.Logger {
	var logger *zap.Logger
	var err error
	// set the log level
	if command.Bool("debug") {
		logConfig := zap.NewProductionConfig()
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err = logConfig.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

func withLogger(ctx context.Context, command *cli.Command, f func(logger *zap.Logger) error) error {
	logger := getLogger(command)
	defer func() {
		_ = logger.Sync()
	}()

	cleanup := initTracer(logger.Sugar(), command.Bool("trace-insecure"), command.String("trace-endpoint"))
	defer func() {
		if cleanup == nil {
			return
		}
		if err := cleanup(context.Background()); err != nil {
			logger.Error(err.Error())
		}
	}()

	return f(logger)
}

func initTracer(logger *zap.SugaredLogger, insecure bool, collector string) func(context.Context) error {
	if collector == "" {
		logger.Info("No collector endpoint configured")
		otel.SetTracerProvider(
			sdktrace.NewTracerProvider(
				sdktrace.WithSampler(sdktrace.AlwaysSample()),
			),
		)
		return nil
	}
	secureOption := otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, ""))
	if insecure {
		secureOption = otlptracegrpc.WithInsecure()
	}
	exporter, err := otlptrace.New(
		context.Background(),
		otlptracegrpc.NewClient(
			secureOption,
			otlptracegrpc.WithEndpoint(collector),
		),
	)
	if err != nil {
		logger.Errorf("Unable to create open telemetry exporter: %s", err.Error())
		return nil
	}

	deployEnvironment := util.Getenv("DEVAPI_ENVIRONMENT", "development")
	otel.SetTracerProvider(
		sdktrace.NewTracerProvider(
			sdktrace.WithResource(resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName("apiserver"),
				semconv.DeploymentEnvironment(deployEnvironment),
				attribute.String("library.language", "go"),
			)),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithBatcher(exporter),
		),
	)
	return exporter.Shutdown
}
