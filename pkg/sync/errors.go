package sync

import "github.com/tokmz/dictsync/pkg/errors"

// 6200 段错误码：同步流程
var (
	// ErrLanguage 单个语言处理失败，终止本次运行
	ErrLanguage = errors.New(6201, 1, "同步语言失败", nil)
	// ErrDrift 检查模式下发现磁盘文件与平台不一致
	ErrDrift = errors.New(6202, 2, "翻译文件已过期", nil)
)
