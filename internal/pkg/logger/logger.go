package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction tags the context logger with the operation being served.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithStudy tags the context logger with a study id. A nil id means the
// global word list and adds nothing.
func WithStudy(ctx context.Context, studyID *int64) context.Context {
	if studyID == nil {
		return ctx
	}
	return AddFields(ctx, zap.Int64("study_id", *studyID))
}
