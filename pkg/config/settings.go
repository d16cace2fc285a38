package config

import (
	"net/url"
	"strings"
)

// 配置键
const (
	KeyHost   = "main.host"
	KeyBrand  = "main.brand"
	KeyAPIKey = "main.key"
)

// Settings 翻译平台访问参数
type Settings struct {
	Host  string // API 基础地址，如 https://translate.example.com
	Brand string // 品牌标识
	Key   string // API 密钥，作为 ?key= 查询参数发送
}

// Settings 读取 [main] 节并校验
func (c *Config) Settings() (Settings, error) {
	s := Settings{
		Host:  c.GetString(KeyHost),
		Brand: c.GetString(KeyBrand),
		Key:   c.GetString(KeyAPIKey),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验必填项
func (s Settings) Validate() error {
	if s.Host == "" {
		return ErrConfigInvalid.WithMessage("main.host is required")
	}
	u, err := url.Parse(s.Host)
	if err != nil {
		return ErrConfigInvalid.WithMessage("main.host is not a valid URL").WithError(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigInvalid.WithMessage("main.host must be an absolute http(s) URL: " + s.Host)
	}
	if strings.TrimSpace(s.Brand) == "" {
		return ErrConfigInvalid.WithMessage("main.brand is required")
	}
	if strings.TrimSpace(s.Key) == "" {
		return ErrConfigInvalid.WithMessage("main.key is required")
	}
	return nil
}

// String 打印时隐藏密钥
func (s Settings) String() string {
	return "host=" + s.Host + " brand=" + s.Brand + " key=***"
}
