package logger

import (
	"context"
	"log/slog"
)

type fieldsKey struct{}

// WithFields добавляет поля, которые попадут во все Ctx* записи этого контекста.
// Повторный ключ перекрывает прежнее значение.
func WithFields(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(fieldsKey{}).([]slog.Attr)
	added := slog.Group("", args...).Value.Group()

	merged := make([]slog.Attr, 0, len(prev)+len(added))
	for _, a := range prev {
		if !hasKey(added, a.Key) {
			merged = append(merged, a)
		}
	}
	merged = append(merged, added...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func hasKey(attrs []slog.Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithFields(ctx, "request_id", requestID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return WithFields(ctx, "user_id", userID)
}

// FromContext возвращает глобальный логгер, дополненный полями контекста.
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	if ctx == nil {
		return l
	}
	attrs, _ := ctx.Value(fieldsKey{}).([]slog.Attr)
	if len(attrs) == 0 {
		return l
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return l.With(args...)
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError пишет ошибку на уровне Error.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}
