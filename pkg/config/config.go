package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// DefaultFile 默认配置文件（相对当前工作目录）
const DefaultFile = "config"

// Config 配置管理器
// INI 文件经 ini.v1 解析后并入 viper，默认值、环境变量与命令行参数按 viper 的优先级叠加
type Config struct {
	viper *viper.Viper // viper 实例
	mu    sync.RWMutex // 并发保护锁

	configFile string // 配置文件完整路径

	defaults       map[string]any    // 默认配置值
	envPrefix      string            // 环境变量前缀
	envKeyReplacer *strings.Replacer // 环境变量键名替换器
}

// New 创建新的配置管理器
func New(opts ...Option) *Config {
	c := &Config{
		viper:      viper.New(),
		configFile: DefaultFile,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load 加载配置文件
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 设置默认值
	for k, v := range c.defaults {
		c.viper.SetDefault(k, v)
	}

	// 设置环境变量
	if c.envPrefix != "" {
		c.viper.SetEnvPrefix(c.envPrefix)
		c.viper.AutomaticEnv()
	}
	if c.envKeyReplacer != nil {
		c.viper.SetEnvKeyReplacer(c.envKeyReplacer)
	}

	if _, err := os.Stat(c.configFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrConfigNotFound.WithMessage("配置文件未找到: " + c.configFile).WithError(err)
		}
		return ErrConfigReadFailed.WithError(err)
	}

	file, err := ini.Load(c.configFile)
	if err != nil {
		return ErrConfigReadFailed.WithError(err)
	}

	if err := c.viper.MergeConfigMap(sectionsToMap(file)); err != nil {
		return ErrConfigReadFailed.WithError(err)
	}

	return nil
}

// sectionsToMap 将 INI 各节转换为 viper 的嵌套 map
// DEFAULT 节中的键被其余各节继承（节内同名键优先）
func sectionsToMap(file *ini.File) map[string]any {
	inherited := make(map[string]string)
	if def, err := file.GetSection(ini.DefaultSection); err == nil {
		for _, key := range def.Keys() {
			inherited[strings.ToLower(key.Name())] = key.String()
		}
	}

	out := make(map[string]any)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		values := make(map[string]any, len(inherited)+len(section.Keys()))
		for k, v := range inherited {
			values[k] = v
		}
		for _, key := range section.Keys() {
			values[strings.ToLower(key.Name())] = key.String()
		}
		out[strings.ToLower(section.Name())] = values
	}
	return out
}

// BindFlag 将命令行参数绑定到配置键（参数被显式设置时优先于文件与环境变量）
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if flag == nil {
		return ErrConfigInvalid.WithMessage("未知的命令行参数: " + key)
	}
	return c.viper.BindPFlag(key, flag)
}

// File 返回配置文件路径
func (c *Config) File() string {
	return c.configFile
}

// GetString 获取字符串配置值
func (c *Config) GetString(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimSpace(c.viper.GetString(key))
}

// GetInt 获取整数配置值
func (c *Config) GetInt(key string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viper.GetInt(key)
}

// GetBool 获取布尔配置值
func (c *Config) GetBool(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viper.GetBool(key)
}

// GetDuration 获取时间间隔配置值
func (c *Config) GetDuration(key string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viper.GetDuration(key)
}

// GetStringSlice 获取字符串切片配置值（逗号分隔的字符串也会被拆分）
func (c *Config) GetStringSlice(key string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for _, item := range c.viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Set 设置配置值
func (c *Config) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viper.Set(key, value)
}

// IsSet 检查配置键是否存在
func (c *Config) IsSet(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viper.IsSet(key)
}
