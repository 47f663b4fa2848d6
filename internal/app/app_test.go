package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"treasure_hunt_backend/pkg/logger"
)

// 追踪器要活到进程收尾，shutdown 之后才算释放
func TestShutdownReleasesTracerProvider(t *testing.T) {
	logger.Log = zap.NewNop()

	tp := sdktrace.NewTracerProvider()
	a := &App{tracerProvider: tp}

	_, before := tp.Tracer("app").Start(context.Background(), "op")
	assert.True(t, before.IsRecording())
	before.End()

	a.shutdown(context.Background())

	// 关闭后 provider 只发 no-op tracer，新 span 不再记录
	_, after := tp.Tracer("app").Start(context.Background(), "op")
	assert.False(t, after.IsRecording())
	after.End()
}

func TestShutdownWithoutTracer(t *testing.T) {
	logger.Log = zap.NewNop()

	a := &App{}
	assert.NotPanics(t, func() {
		a.shutdown(context.Background())
	})
}
