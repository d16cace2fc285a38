package config

import "github.com/tokmz/dictsync/pkg/errors"

// 配置包专用错误定义
var (
	// ErrConfigNotFound 配置文件未找到
	ErrConfigNotFound = errors.New(3001, 1, "配置文件未找到", nil)
	// ErrConfigReadFailed 配置读取失败
	ErrConfigReadFailed = errors.New(3003, 1, "配置读取失败", nil)
	// ErrConfigInvalid 配置项无效
	ErrConfigInvalid = errors.New(3004, 1, "配置项无效", nil)
)
