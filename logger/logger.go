package logger

import (
	"context"
	"fmt"

	"github.com/JENAI-COMPANY/jenai-sub002/common"
	"github.com/JENAI-COMPANY/jenai-sub002/constant"
)

func requestId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	// gin stores context keys as plain strings.
	if id, ok := ctx.Value(string(constant.ContextKeyRequestId)).(string); ok {
		return id
	}
	return ""
}

func LogInfo(ctx context.Context, message string) {
	if id := requestId(ctx); id != "" {
		message = fmt.Sprintf("%s | %s", id, message)
	}
	common.SysLog(message)
}

func LogError(ctx context.Context, message string) {
	if id := requestId(ctx); id != "" {
		message = fmt.Sprintf("%s | %s", id, message)
	}
	common.SysError(message)
}
