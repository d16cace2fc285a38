package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// KVLogger 以 key-value 参数记录日志的适配器
// 供只依赖最小日志接口的组件（如 HTTP 客户端）使用
type KVLogger struct {
	l Logger
}

// KV 包装 Logger
func KV(l Logger) *KVLogger {
	return &KVLogger{l: l}
}

// InfoContext 记录 Info 级别日志
func (k *KVLogger) InfoContext(ctx context.Context, msg string, keysAndValues ...any) {
	k.l.InfoContext(ctx, msg, kvFields(keysAndValues)...)
}

// DebugContext 记录 Debug 级别日志
func (k *KVLogger) DebugContext(ctx context.Context, msg string, keysAndValues ...any) {
	k.l.DebugContext(ctx, msg, kvFields(keysAndValues)...)
}

// ErrorContext 记录 Error 级别日志
func (k *KVLogger) ErrorContext(ctx context.Context, msg string, keysAndValues ...any) {
	k.l.ErrorContext(ctx, msg, kvFields(keysAndValues)...)
}

func kvFields(kv []any) []zap.Field {
	fields := make([]zap.Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 == len(kv) {
			fields = append(fields, zap.Any("!BADKEY", kv[i]))
			break
		}
		if err, ok := kv[i+1].(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}
