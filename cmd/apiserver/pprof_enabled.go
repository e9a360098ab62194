//go:build pprof

package main

import (
	"context"
	"fmt"
	"net/http"
	// #nosec
	_ "net/http/pprof"
	"time"

	"github.com/lalitbiswal91/device-management/internal/util"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func pprof_init(ctx context.Context, _ *cli.Command, logger *zap.Logger) {
	port, err := util.GetenvInt("DEVAPI_PPROF_PORT", 8088)
	if err != nil {
		logger.Sugar().Errorf("DEVAPI_PPROF_PORT environment variable is invalid: %v", err.Error())
		port = 8088
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Errorf("pprof ListenAndServe error: %v", err.Error())
		}
	}()
}
