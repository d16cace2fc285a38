// Package sync 拉取品牌全部语言的词典并写出嵌套 JSON
package sync

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tokmz/dictsync/pkg/brandapi"
	"github.com/tokmz/dictsync/pkg/dict"
	"github.com/tokmz/dictsync/pkg/errors"
	"github.com/tokmz/dictsync/pkg/logger"
	"github.com/tokmz/dictsync/pkg/output"
	"github.com/tokmz/dictsync/pkg/tracing"
)

// SkipMessage 词典获取失败时输出的警告前缀
const SkipMessage = "COULD NOT FETCH TRANSLATIONS FOR LANGUAGE: "

// API 翻译平台接口，*brandapi.Client 实现
type API interface {
	ListLanguages(ctx context.Context) ([]brandapi.Language, error)
	FetchDictionary(ctx context.Context, code string) ([]dict.Entry, error)
}

// Runner 一次同步运行
type Runner struct {
	API    API
	Writer *output.Writer
	Log    logger.Logger

	Only   []string // 仅处理这些语言，空表示全部
	DryRun bool     // 只拉取和转换，不写文件
	Check  bool     // 与磁盘文件比较，不写文件
}

// Report 运行结果
type Report struct {
	Written []string // 写出（DryRun 时为将写出）的文件路径
	Skipped []string // 词典获取失败而跳过的语言代码
	Stale   []string // Check 模式下内容不同的语言代码
	Missing []string // Check 模式下文件不存在的语言代码
}

// Drift Check 模式是否发现差异
func (r Report) Drift() bool {
	return len(r.Stale) > 0 || len(r.Missing) > 0
}

// Run 顺序处理品牌的每个语言
// 语言列表获取失败、响应解析失败、键路径冲突、写文件失败均终止运行；
// 单个语言词典返回非 200 时输出一行警告并跳过
func (r *Runner) Run(ctx context.Context) (Report, error) {
	var report Report

	if logger.RunIDFromContext(ctx) == "" {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}
	ctx, span := tracing.StartSpan(ctx, "dictsync.run")
	defer span.End()

	log := r.Log
	if log == nil {
		log = logger.Nop()
	}

	langs, err := r.API.ListLanguages(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return report, err
	}

	langs, unknown := filterLanguages(langs, r.Only)
	for _, code := range unknown {
		log.WarnContext(ctx, "language not offered by brand", zap.String("code", code))
	}
	span.SetAttributes(attribute.Int("dictsync.languages", len(langs)))

	for _, lang := range langs {
		if err := r.language(ctx, log, lang.Code, &report); err != nil {
			tracing.RecordError(span, err)
			return report, err
		}
	}

	log.InfoContext(ctx, "sync finished",
		zap.Int("written", len(report.Written)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Bool("dry_run", r.DryRun),
	)
	return report, nil
}

// language 处理单个语言
func (r *Runner) language(ctx context.Context, log logger.Logger, code string, report *Report) error {
	ctx, span := tracing.StartSpan(ctx, "dictsync.language")
	defer span.End()
	span.SetAttributes(attribute.String("dictsync.language", code))

	log.InfoContext(ctx, code)

	entries, err := r.API.FetchDictionary(ctx, code)
	if errors.Is(err, brandapi.ErrFetchDictionary) {
		span.SetAttributes(attribute.Bool("dictsync.skipped", true))
		log.WarnContext(ctx, SkipMessage+code)
		report.Skipped = append(report.Skipped, code)
		return nil
	}
	if err != nil {
		tracing.RecordError(span, err)
		return ErrLanguage.WithMessage("同步语言失败: " + code).WithError(err)
	}

	tree, err := dict.Deflatten(entries)
	if err != nil {
		tracing.RecordError(span, err)
		return ErrLanguage.WithMessage("同步语言失败: " + code).WithError(err)
	}

	switch {
	case r.Check:
		path, status, err := r.Writer.Compare(code, tree)
		if err != nil {
			return ErrLanguage.WithMessage("同步语言失败: " + code).WithError(err)
		}
		switch status {
		case output.Stale:
			report.Stale = append(report.Stale, code)
			log.WarnContext(ctx, "translation file is stale", zap.String("path", path))
		case output.Missing:
			report.Missing = append(report.Missing, code)
			log.WarnContext(ctx, "translation file is missing", zap.String("path", path))
		}
	case r.DryRun:
		path, err := r.Writer.Path(code)
		if err != nil {
			return ErrLanguage.WithMessage("同步语言失败: " + code).WithError(err)
		}
		report.Written = append(report.Written, path)
		log.DebugContext(ctx, "dry run, not written", zap.String("path", path), zap.Int("keys", tree.Len()))
	default:
		path, err := r.Writer.Write(code, tree)
		if err != nil {
			tracing.RecordError(span, err)
			return ErrLanguage.WithMessage("同步语言失败: " + code).WithError(err)
		}
		report.Written = append(report.Written, path)
		log.DebugContext(ctx, "written", zap.String("path", path))
	}
	return nil
}
