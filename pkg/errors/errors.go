package errors

import "errors"

// Error 带错误码的错误
type Error struct {
	Code     int    `json:"code"`    // 错误码
	Message  string `json:"message"` // 错误信息
	ExitCode int    `json:"-"`       // 进程退出码
	Err      error  `json:"-"`       // 原始错误
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap 实现 errors.Unwrap 接口
func (e *Error) Unwrap() error {
	return e.Err
}

// New 创建新的错误
// code 错误码
// exitCode 进程退出码（<=0 时取 1）
// message 错误信息
// err 原始错误，可为 nil
func New(code, exitCode int, message string, err error) *Error {
	if exitCode <= 0 {
		exitCode = 1
	}
	return &Error{
		Code:     code,
		ExitCode: exitCode,
		Message:  message,
		Err:      err,
	}
}

// WithError 添加原始错误（返回新实例，不修改原错误）
func (e *Error) WithError(err error) *Error {
	return &Error{
		Code:     e.Code,
		ExitCode: e.ExitCode,
		Message:  e.Message,
		Err:      err,
	}
}

// WithMessage 替换错误信息（返回新实例，不修改原错误）
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Code:     e.Code,
		ExitCode: e.ExitCode,
		Message:  message,
		Err:      e.Err,
	}
}

// Is 当 target 也是 *Error 时比较 Code，否则沿原始错误链比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

// ExitCode 返回错误链上第一个 *Error 的退出码，非 *Error 返回 1，nil 返回 0
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode
	}
	return 1
}

// As 转换为指定类型的错误
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is 检查错误是否为指定类型
func Is(err error, target error) bool {
	return errors.Is(err, target)
}
