// Package brandapi 访问翻译管理平台的 v2 REST 接口
package brandapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tokmz/dictsync/pkg/config"
	"github.com/tokmz/dictsync/pkg/dict"
	"github.com/tokmz/dictsync/pkg/errors"
	"github.com/tokmz/dictsync/pkg/logger"
	"github.com/tokmz/dictsync/pkg/request"
)

// 密钥查询参数名
const keyParam = "key"

// Language 品牌启用的语言
type Language struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Client 品牌接口客户端
type Client struct {
	http  *request.Client
	brand string
}

type options struct {
	timeout   time.Duration
	retry     *request.RetryConfig
	log       logger.Logger
	tracing   bool
	transport http.RoundTripper
}

// Option 客户端选项
type Option func(*options)

// WithTimeout 单次请求超时
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetry 启用重试（默认不重试）
func WithRetry(cfg *request.RetryConfig) Option {
	return func(o *options) { o.retry = cfg }
}

// WithLogger 记录请求日志，密钥会被隐藏
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracing 为每个请求创建 Span
func WithTracing(enable bool) Option {
	return func(o *options) { o.tracing = enable }
}

// WithTransport 自定义 Transport（测试用）
func WithTransport(t http.RoundTripper) Option {
	return func(o *options) { o.transport = t }
}

// NewClient 创建客户端，settings 需已通过 Validate
func NewClient(settings config.Settings, opts ...Option) *Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := settings.Key
	reqOpts := []request.Option{
		request.WithBaseURL(settings.Host),
		request.WithHeader("Accept", "application/json"),
		request.WithTimeout(o.timeout),
		request.WithRetry(o.retry),
		request.WithTracing(o.tracing),
		request.WithInterceptor(request.NewQueryAuthInterceptor(keyParam, func() string { return key })),
	}
	if o.log != nil {
		kv := logger.KV(o.log)
		reqOpts = append(reqOpts,
			request.WithLogger(kv),
			request.WithInterceptor(request.NewLoggingInterceptor(kv, keyParam)),
		)
	}
	if o.transport != nil {
		reqOpts = append(reqOpts, request.WithTransport(o.transport))
	}

	return &Client{
		http:  request.New(reqOpts...),
		brand: settings.Brand,
	}
}

// languagesPath /api/v2/brands/{brand}/languages
func (c *Client) languagesPath() string {
	return "/api/v2/brands/" + url.PathEscape(c.brand) + "/languages"
}

// ListLanguages 获取品牌语言列表，仅 HTTP 200 视为成功
// 任一项缺少 code 时返回 ErrDecode
func (c *Client) ListLanguages(ctx context.Context) ([]Language, error) {
	resp, err := c.http.R(ctx).
		SetURL(c.languagesPath()).
		ExpectStatus(http.StatusOK).
		Do()
	if err != nil {
		return nil, ErrListLanguages.WithError(err)
	}

	var langs []Language
	if err := resp.Unmarshal(&langs); err != nil {
		return nil, ErrDecode.WithMessage("语言列表解析失败").WithError(err)
	}
	for i, l := range langs {
		if l.Code == "" {
			return nil, ErrDecode.WithMessage(fmt.Sprintf("语言列表第 %d 项缺少 code", i))
		}
	}
	return langs, nil
}

// FetchDictionary 获取某语言的扁平词典，条目保持响应中的顺序（含重复键）
// 非 200 返回 ErrFetchDictionary，调用方可跳过该语言；其余错误应视为致命
func (c *Client) FetchDictionary(ctx context.Context, code string) ([]dict.Entry, error) {
	resp, err := c.http.R(ctx).
		SetURL(c.languagesPath()+"/"+url.PathEscape(code)+"/dictionary").
		SetQuery("unescaped_unicode", "1").
		ExpectStatus(http.StatusOK).
		Do()
	if err != nil {
		if errors.Is(err, request.ErrUnexpectedStatus) {
			return nil, ErrFetchDictionary.WithMessage("获取语言词典失败: " + code).WithError(err)
		}
		return nil, err
	}

	entries, err := dict.DecodeFlat(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, ErrDecode.WithMessage("词典解析失败: " + code).WithError(err)
	}
	return entries, nil
}
