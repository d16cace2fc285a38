package dict

import (
	"fmt"

	"github.com/tokmz/dictsync/pkg/errors"
)

// 6000 段错误码：字典数据相关
var (
	// ErrConflictingKeyPath 键路径冲突：较短的键已在前缀位置写入非对象值
	ErrConflictingKeyPath = errors.New(6001, 1, "键路径冲突", nil)
	// ErrNotObject 顶层 JSON 不是对象
	ErrNotObject = errors.New(6002, 1, "JSON 顶层不是对象", nil)
	// ErrDecode JSON 解析失败
	ErrDecode = errors.New(6003, 1, "JSON 解析失败", nil)
	// ErrEncode JSON 序列化失败
	ErrEncode = errors.New(6004, 1, "JSON 序列化失败", nil)
)

// ConflictError 展开时无法下探到非对象节点
type ConflictError struct {
	Key      string // 正在处理的扁平键
	Path     string // 已被非对象值占用的前缀路径
	Existing Kind   // 占用该路径的值类型
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting key path: %q cannot be nested under %q which holds a %s",
		e.Key, e.Path, e.Existing)
}

// Is 使 errors.Is(err, ErrConflictingKeyPath) 成立
func (e *ConflictError) Is(target error) bool {
	return ErrConflictingKeyPath.Is(target)
}
