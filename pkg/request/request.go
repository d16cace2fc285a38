package request

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request 链式请求构建器
type Request struct {
	client  *Client
	method  string
	url     string
	headers map[string]string
	query   url.Values
	expect  []int
	timeout time.Duration
	ctx     context.Context
	retry   *RetryConfig
}

func newRequest(c *Client, method, rawURL string) *Request {
	return &Request{
		client:  c,
		method:  method,
		url:     rawURL,
		headers: make(map[string]string),
		query:   make(url.Values),
		ctx:     context.Background(),
	}
}

// SetMethod 设置请求方法
func (r *Request) SetMethod(method string) *Request {
	r.method = method
	return r
}

// SetURL 设置请求 URL
func (r *Request) SetURL(url string) *Request {
	r.url = url
	return r
}

// SetHeader 设置请求头
func (r *Request) SetHeader(k, v string) *Request {
	r.headers[k] = v
	return r
}

// SetQuery 设置查询参数
func (r *Request) SetQuery(k, v string) *Request {
	r.query.Set(k, v)
	return r
}

// SetTimeout 覆盖客户端超时
func (r *Request) SetTimeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// SetContext 设置请求上下文
func (r *Request) SetContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// SetRetry 覆盖客户端重试配置
func (r *Request) SetRetry(cfg *RetryConfig) *Request {
	r.retry = cfg
	return r
}

// ExpectStatus 仅接受指定状态码，其余状态码由 Do 返回 *StatusError
func (r *Request) ExpectStatus(codes ...int) *Request {
	r.expect = append(r.expect, codes...)
	return r
}

// Do 执行请求
func (r *Request) Do() (*Response, error) {
	resp, err := r.client.execute(r)
	if err != nil {
		return resp, err
	}
	if len(r.expect) > 0 && !r.expected(resp.StatusCode) {
		return resp, statusError(resp)
	}
	return resp, nil
}

func (r *Request) expected(code int) bool {
	for _, c := range r.expect {
		if c == code {
			return true
		}
	}
	return false
}

// buildURL 构建完整 URL
func (r *Request) buildURL(baseURL string) (string, error) {
	rawURL := r.url
	if baseURL != "" && !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(rawURL, "/")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL.WithError(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL.WithMessage("无效的URL: " + rawURL)
	}

	if len(r.query) == 0 {
		return u.String(), nil
	}

	q := u.Query()
	for k, vs := range r.query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// buildHTTPRequest 构建 http.Request（每次调用生成新的，支持重试）
func (r *Request) buildHTTPRequest(baseURL string, mergedHeaders map[string]string) (*http.Request, error) {
	fullURL, err := r.buildURL(baseURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(r.ctx, r.method, fullURL, nil)
	if err != nil {
		return nil, ErrRequestFailed.WithError(err)
	}

	for k, v := range mergedHeaders {
		req.Header.Set(k, v)
	}

	return req, nil
}
