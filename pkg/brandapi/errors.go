package brandapi

import "github.com/tokmz/dictsync/pkg/errors"

// 5000 段错误码：翻译平台接口
var (
	// ErrListLanguages 获取品牌语言列表失败（致命）
	ErrListLanguages = errors.New(5001, 1, "获取品牌语言列表失败", nil)
	// ErrFetchDictionary 获取语言词典失败（跳过该语言）
	ErrFetchDictionary = errors.New(5002, 1, "获取语言词典失败", nil)
	// ErrDecode 响应体不是合法 JSON（致命）
	ErrDecode = errors.New(5003, 1, "响应体解析失败", nil)
)
