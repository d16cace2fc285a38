package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokmz/dictsync/pkg/brandapi"
	"github.com/tokmz/dictsync/pkg/config"
	"github.com/tokmz/dictsync/pkg/logger"
	"github.com/tokmz/dictsync/pkg/output"
	"github.com/tokmz/dictsync/pkg/request"
	dsync "github.com/tokmz/dictsync/pkg/sync"
	"github.com/tokmz/dictsync/pkg/tracing"
)

// 命令行参数与配置键的对应关系
var flagKeys = map[string]string{
	"output":     "main.output",
	"only":       "main.only",
	"timeout":    "http.timeout",
	"retries":    "http.retries",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"trace":      "trace.exporter",
}

var defaults = map[string]any{
	"main.output":    output.DefaultDir,
	"http.timeout":   "30s",
	"http.retries":   0,
	"log.level":      "info",
	"log.format":     "console",
	"trace.exporter": tracing.ExporterNoop,
}

type rootOptions struct {
	configFile string
	dryRun     bool
	check      bool
	mkdir      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dictsync",
		Short:         "Download brand dictionaries and write nested i18n JSON files",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "INI config file with a [main] section")
	f.StringP("output", "o", "", "output directory (default "+output.DefaultDir+")")
	f.StringSlice("only", nil, "only sync these language codes")
	f.BoolVar(&opts.dryRun, "dry-run", false, "fetch and convert but do not write files")
	f.BoolVar(&opts.check, "check", false, "compare with files on disk, exit 2 if any differ")
	f.BoolVar(&opts.mkdir, "mkdir", false, "create the output directory if missing")
	f.Duration("timeout", 0, "per request timeout (default 30s)")
	f.Int("retries", 0, "retry failed requests up to n times")
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("log-format", "", "log format: console, json")
	f.String("log-file", "", "also write logs to this file (rotated)")
	f.String("trace", "", "trace exporter: noop, stdout, otlp")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")

	return cmd
}

// loadConfig 读取配置文件并叠加环境变量与命令行参数
func loadConfig(cmd *cobra.Command, file string) (*config.Config, error) {
	cfg := config.New(
		config.WithConfigFile(file),
		config.WithDefaults(defaults),
		config.WithEnvPrefix("DICTSYNC"),
		config.WithEnvKeyReplacer(strings.NewReplacer(".", "_")),
	)
	for name, key := range flagKeys {
		if err := cfg.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger 按配置创建日志器，控制台输出到命令的标准输出
func newLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.GetString("log.level"))
	if err != nil {
		return nil, config.ErrConfigInvalid.WithMessage("log.level 无效").WithError(err)
	}
	format, err := logger.ParseFormat(cfg.GetString("log.format"))
	if err != nil {
		return nil, config.ErrConfigInvalid.WithMessage("log.format 无效").WithError(err)
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithWriter(cmd.OutOrStdout()),
	}
	if file := cfg.GetString("log.file"); file != "" {
		opts = append(opts, logger.WithRotateOutput(&logger.RotateConfig{Filename: file}))
	}
	return logger.NewWithOptions(opts...)
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	ctx := logger.WithRunID(cmd.Context(), uuid.NewString())

	cfg, err := loadConfig(cmd, opts.configFile)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	exporter := cfg.GetString("trace.exporter")
	tcfg := tracing.DefaultConfig()
	tcfg.ServiceVersion = version
	tcfg.ExporterType = exporter
	tcfg.ExporterEndpoint = cfg.GetString("trace.endpoint")
	tcfg.Writer = cmd.ErrOrStderr()
	tp, err := tracing.NewTracerProvider(ctx, tcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.WarnContext(ctx, "trace shutdown failed", zap.Error(err))
		}
	}()

	apiOpts := []brandapi.Option{
		brandapi.WithTimeout(cfg.GetDuration("http.timeout")),
		brandapi.WithTracing(exporter != tracing.ExporterNoop),
	}
	if n := cfg.GetInt("http.retries"); n > 0 {
		apiOpts = append(apiOpts, brandapi.WithRetry(&request.RetryConfig{MaxAttempts: n}))
	}
	if log.Level() <= logger.DebugLevel {
		apiOpts = append(apiOpts, brandapi.WithLogger(log))
	}

	log.DebugContext(ctx, "config loaded", zap.String("file", cfg.File()), zap.Stringer("settings", settings))

	runner := &dsync.Runner{
		API: brandapi.NewClient(settings, apiOpts...),
		Writer: &output.Writer{
			Dir:   cfg.GetString("main.output"),
			Mkdir: opts.mkdir,
		},
		Log:    log,
		Only:   cfg.GetStringSlice("main.only"),
		DryRun: opts.dryRun,
		Check:  opts.check,
	}

	report, err := runner.Run(ctx)
	if err != nil {
		log.ErrorContext(ctx, "sync failed", zap.Error(err))
		return err
	}
	if opts.check && report.Drift() {
		return dsync.ErrDrift.WithMessage(fmt.Sprintf("翻译文件已过期: stale=%v missing=%v", report.Stale, report.Missing))
	}
	return nil
}
