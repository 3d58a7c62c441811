package errorx

import (
	"errors"
	"fmt"
)

// 定义业务错误
var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantRequired    = errors.New("tenant id is required")
	ErrUnknownAnalysis   = errors.New("unknown analysis kind")
	ErrEngineUnavailable = errors.New("engine script not found")
)

// ExtractionError 数据提取错误（数据库不可达或查询失败）
// 不在本层重试，原样向上传递给 HTTP 层
type ExtractionError struct {
	Analysis string // 分析类型
	Err      error  // 底层存储错误
}

// Error 实现 error 接口
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Analysis, e.Err)
}

// Unwrap 返回底层错误
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError 创建数据提取错误
func NewExtractionError(analysis string, err error) *ExtractionError {
	return &ExtractionError{Analysis: analysis, Err: err}
}

// EngineExecutionError 引擎进程非零退出错误
// 保留诊断文本（stderr）和退出码，仅用于服务端日志
type EngineExecutionError struct {
	Script   string // 引擎脚本名
	ExitCode int    // 进程退出码
	Stderr   string // 进程标准错误输出（诊断文本）
}

// Error 实现 error 接口
func (e *EngineExecutionError) Error() string {
	return fmt.Sprintf("engine %s exited with code %d: %s", e.Script, e.ExitCode, e.Stderr)
}

// NewEngineExecutionError 创建引擎执行错误
func NewEngineExecutionError(script string, exitCode int, stderr string) *EngineExecutionError {
	return &EngineExecutionError{Script: script, ExitCode: exitCode, Stderr: stderr}
}

// EngineOutputMalformed 引擎输出无法解析为结构化数据
// 保留原始输出文本用于诊断（不保留解析异常本身）
type EngineOutputMalformed struct {
	Script string // 引擎脚本名
	Raw    string // 原始输出文本
}

// Error 实现 error 接口
func (e *EngineOutputMalformed) Error() string {
	return fmt.Sprintf("engine %s produced unparseable output: %s", e.Script, e.Raw)
}

// NewEngineOutputMalformed 创建引擎输出格式错误
func NewEngineOutputMalformed(script string, raw string) *EngineOutputMalformed {
	return &EngineOutputMalformed{Script: script, Raw: raw}
}

// IsEngineError 判断是否为引擎侧错误（执行失败或输出格式错误）
func IsEngineError(err error) bool {
	var execErr *EngineExecutionError
	var outErr *EngineOutputMalformed
	return errors.As(err, &execErr) || errors.As(err, &outErr)
}
