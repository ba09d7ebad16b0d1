package logger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/event"
	"go.uber.org/zap"
)

// MongoMonitorOption configures NewMongoMonitor
type MongoMonitorOption func(*mongoMonitor)

// WithMongoSlowThreshold sets the duration above which a command is logged at warn level
func WithMongoSlowThreshold(threshold time.Duration) MongoMonitorOption {
	return func(m *mongoMonitor) {
		m.slowThreshold = threshold
	}
}

type mongoMonitor struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewMongoMonitor returns a command monitor that logs every MongoDB command
// outcome through zap. Successful commands are logged at debug, slow ones at
// warn and failures at error.
func NewMongoMonitor(zapLogger *zap.Logger, opts ...MongoMonitorOption) *event.CommandMonitor {
	m := &mongoMonitor{
		logger:        zapLogger.Named("mongo"),
		slowThreshold: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}

	return &event.CommandMonitor{
		Succeeded: m.succeeded,
		Failed:    m.failed,
	}
}

func (m *mongoMonitor) succeeded(ctx context.Context, evt *event.CommandSucceededEvent) {
	fields := m.fields(ctx, &evt.CommandFinishedEvent)
	if m.slowThreshold != 0 && evt.Duration > m.slowThreshold {
		m.forContext(ctx).Warn("Slow Mongo command", append(fields, zap.Duration("threshold", m.slowThreshold))...)
		return
	}
	m.forContext(ctx).Debug("Mongo command", fields...)
}

func (m *mongoMonitor) failed(ctx context.Context, evt *event.CommandFailedEvent) {
	fields := append(m.fields(ctx, &evt.CommandFinishedEvent), zap.Any("failure", evt.Failure))
	m.forContext(ctx).Error("Mongo command failed", fields...)
}

func (m *mongoMonitor) fields(_ context.Context, evt *event.CommandFinishedEvent) []zap.Field {
	return []zap.Field{
		zap.String("command", evt.CommandName),
		zap.String("database", evt.DatabaseName),
		zap.Int64("mongo_request_id", evt.RequestID),
		zap.Duration("elapsed", evt.Duration),
	}
}

func (m *mongoMonitor) forContext(ctx context.Context) *zap.Logger {
	log := m.logger
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	return WithTraceContext(ctx, log)
}
