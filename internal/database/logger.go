package database

import (
	"context"
	"errors"
	"time"

	"github.com/lalitbiswal91/device-management/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// gormLogger routes gorm's SQL logging into zap, tagged with the request trace id.
type gormLogger struct {
	logger                    *zap.SugaredLogger
	SlowThreshold             time.Duration
	LogLevel                  logger.LogLevel
	IgnoreRecordNotFoundError bool
}

func NewLogger(sugar *zap.SugaredLogger) logger.Interface {
	return &gormLogger{
		logger:                    sugar,
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.LogLevel = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.LogLevel >= logger.Info {
		util.WithTrace(ctx, g.logger).Infof(msg, args...)
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.LogLevel >= logger.Warn {
		util.WithTrace(ctx, g.logger).Warnf(msg, args...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.LogLevel >= logger.Error {
		util.WithTrace(ctx, g.logger).Errorf(msg, args...)
	}
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if g.LogLevel <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.LogLevel >= logger.Error && !(g.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		util.WithTrace(ctx, g.logger).Errorw(sql,
			"line_number", utils.FileWithLineNum(),
			"error", err.Error(),
			"rows", rows,
			"elapsed_ms", float64(elapsed.Nanoseconds())/1e6,
		)
	case g.SlowThreshold != 0 && elapsed > g.SlowThreshold && g.LogLevel >= logger.Warn:
		sql, rows := fc()
		util.WithTrace(ctx, g.logger).Warnw(sql,
			"line_number", utils.FileWithLineNum(),
			"slow_threshold", g.SlowThreshold.String(),
			"rows", rows,
			"elapsed_ms", float64(elapsed.Nanoseconds())/1e6,
		)
	case g.LogLevel >= logger.Info:
		sql, rows := fc()
		util.WithTrace(ctx, g.logger).Debugw(sql,
			"line_number", utils.FileWithLineNum(),
			"rows", rows,
			"elapsed_ms", float64(elapsed.Nanoseconds())/1e6,
		)
	}
}
