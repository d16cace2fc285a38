package logger

import "fmt"

// Format 日志格式
type Format string

const (
	// JSONFormat JSON 格式（CI 收集推荐）
	JSONFormat Format = "json"
	// ConsoleFormat 控制台格式（终端默认）
	ConsoleFormat Format = "console"
)

// String 返回格式名称
func (f Format) String() string {
	return string(f)
}

// IsValid 检查格式是否有效
func (f Format) IsValid() bool {
	return f == JSONFormat || f == ConsoleFormat
}

// ParseFormat 解析格式名称，空串返回 ConsoleFormat
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return ConsoleFormat, nil
	}
	f := Format(s)
	if !f.IsValid() {
		return ConsoleFormat, fmt.Errorf("unknown log format %q", s)
	}
	return f, nil
}
