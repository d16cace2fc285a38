// Package output 将嵌套词典写入前端 i18n 目录
package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/tokmz/dictsync/pkg/dict"
	"github.com/tokmz/dictsync/pkg/errors"
)

// DefaultDir 默认输出目录（相对工作目录）
const DefaultDir = "../frontend/src/i18n"

// 6100 段错误码：输出
var (
	// ErrInvalidCode 语言代码不能作为文件名
	ErrInvalidCode = errors.New(6101, 1, "语言代码无效", nil)
	// ErrWriteFailed 写文件失败
	ErrWriteFailed = errors.New(6102, 1, "写入文件失败", nil)
	// ErrReadFailed 读取已有文件失败
	ErrReadFailed = errors.New(6103, 1, "读取文件失败", nil)
)

// Status 与磁盘文件的比较结果
type Status int

const (
	// Unchanged 内容一致
	Unchanged Status = iota
	// Stale 内容不同
	Stale
	// Missing 文件不存在
	Missing
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Stale:
		return "stale"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// Writer 按语言代码写出 {Dir}/{code}.json
type Writer struct {
	Dir   string      // 输出目录，空则为 DefaultDir
	Perm  os.FileMode // 文件权限，0 则为 0644
	Mkdir bool        // 目录不存在时创建
}

func (w *Writer) dir() string {
	if w.Dir == "" {
		return DefaultDir
	}
	return w.Dir
}

func (w *Writer) perm() os.FileMode {
	if w.Perm == 0 {
		return 0o644
	}
	return w.Perm
}

// Path 返回语言代码对应的目标路径
func (w *Writer) Path(code string) (string, error) {
	if !validCode(code) {
		return "", ErrInvalidCode.WithMessage("语言代码无效: " + code)
	}
	return filepath.Join(w.dir(), code+".json"), nil
}

// validCode 必须是单个路径元素
func validCode(code string) bool {
	if code == "" || code == "." || code == ".." {
		return false
	}
	return !strings.ContainsAny(code, `/\`) && !strings.ContainsRune(code, 0)
}

// Write 写出词典并返回路径，已有文件会被截断覆盖
func (w *Writer) Write(code string, m *dict.Map) (string, error) {
	path, err := w.Path(code)
	if err != nil {
		return "", err
	}
	data, err := dict.Marshal(m)
	if err != nil {
		return "", err
	}

	if w.Mkdir {
		if err := os.MkdirAll(w.dir(), 0o755); err != nil {
			return "", ErrWriteFailed.WithError(err)
		}
	}
	if err := os.WriteFile(path, data, w.perm()); err != nil {
		return "", ErrWriteFailed.WithError(err)
	}
	return path, nil
}

// Compare 将即将写出的内容与磁盘文件比较，不写入
func (w *Writer) Compare(code string, m *dict.Map) (string, Status, error) {
	path, err := w.Path(code)
	if err != nil {
		return "", Unchanged, err
	}
	data, err := dict.Marshal(m)
	if err != nil {
		return "", Unchanged, err
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, Missing, nil
		}
		return path, Unchanged, ErrReadFailed.WithError(err)
	}
	if bytes.Equal(existing, data) {
		return path, Unchanged, nil
	}
	return path, Stale, nil
}
