package request

import (
	"context"
	"net/http"
	"net/url"
)

// Interceptor 拦截器接口
type Interceptor interface {
	// BeforeRequest 请求发送前调用
	BeforeRequest(ctx context.Context, req *http.Request) error
	// AfterResponse 响应返回后调用
	AfterResponse(ctx context.Context, resp *Response) error
}

// loggingInterceptor 日志拦截器
type loggingInterceptor struct {
	log    Logger
	redact []string
}

// NewLoggingInterceptor 创建日志拦截器，redact 中的查询参数在日志里以 *** 代替
func NewLoggingInterceptor(log Logger, redact ...string) Interceptor {
	return &loggingInterceptor{log: log, redact: redact}
}

func (l *loggingInterceptor) BeforeRequest(ctx context.Context, req *http.Request) error {
	l.log.InfoContext(ctx, "http request",
		"method", req.Method,
		"url", RedactURL(req.URL, l.redact...),
	)
	return nil
}

func (l *loggingInterceptor) AfterResponse(ctx context.Context, resp *Response) error {
	l.log.InfoContext(ctx, "http response",
		"method", resp.Request.Method,
		"url", RedactURL(resp.Request.URL, l.redact...),
		"status", resp.StatusCode,
		"duration", resp.Duration,
	)
	return nil
}

// queryAuthInterceptor 以查询参数携带凭证
type queryAuthInterceptor struct {
	param     string
	tokenFunc func() string
}

// NewQueryAuthInterceptor 创建查询参数认证拦截器（如 ?key=...）
func NewQueryAuthInterceptor(param string, tokenFunc func() string) Interceptor {
	return &queryAuthInterceptor{param: param, tokenFunc: tokenFunc}
}

func (a *queryAuthInterceptor) BeforeRequest(_ context.Context, req *http.Request) error {
	if token := a.tokenFunc(); token != "" {
		q := req.URL.Query()
		q.Set(a.param, token)
		req.URL.RawQuery = q.Encode()
	}
	return nil
}

func (a *queryAuthInterceptor) AfterResponse(_ context.Context, _ *Response) error {
	return nil
}

// RedactURL 返回隐藏指定查询参数后的 URL 字符串
func RedactURL(u *url.URL, params ...string) string {
	if u == nil {
		return ""
	}
	if len(params) == 0 || u.RawQuery == "" {
		return u.String()
	}
	q := u.Query()
	changed := false
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, "***")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
