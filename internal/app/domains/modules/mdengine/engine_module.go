package mdengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/atomic"

	"sip/dpanalytics/internal/app/domains/entity/etanalysis"
	"sip/dpanalytics/internal/app/pkg/errorx"
	"sip/dpanalytics/internal/app/pkg/logger"
)

// 分析类型到引擎入口脚本的固定映射
var kindScripts = map[etanalysis.Kind]string{
	etanalysis.KindEDA:          "eda.py",
	etanalysis.KindSegmentation: "segmentation.py",
	etanalysis.KindForecast:     "forecast.py",
}

// EngineModule 引擎进程桥接模块
// 职责：
// 1. 按分析类型解析引擎入口脚本
// 2. 每次调用派生一个全新的外部进程，进程间无共享状态、无互斥
// 3. 归一化载荷写入进程 stdin 并关闭，stdout/stderr 并发累积到进程退出
// 4. 将退出状态映射为成功/失败结果
//
// 每次调用受配置超时约束，超时后进程被杀死；调用方取消同样生效
type EngineModule struct {
	pythonBin string
	scriptDir string
	timeout   time.Duration
	log       logger.Logger

	// 在途进程数，仅用于日志观测
	inFlight *atomic.Int64
}

// NewEngineModule 创建引擎桥接模块实例
func NewEngineModule(pythonBin, scriptDir string, timeout time.Duration, log logger.Logger) *EngineModule {
	return &EngineModule{
		pythonBin: pythonBin,
		scriptDir: scriptDir,
		timeout:   timeout,
		log:       log,
		inFlight:  atomic.NewInt64(0),
	}
}

// Invoke 执行一次引擎调用
// payload 必须是已经过 numx.Normalize 处理的值树；返回引擎输出的原样 JSON，
// 本层不校验输出的形状
func (m *EngineModule) Invoke(ctx context.Context, kind etanalysis.Kind, payload interface{}) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, errorx.ErrUnknownAnalysis
	}
	script := kindScripts[kind]

	scriptPath := filepath.Join(m.scriptDir, script)
	if _, err := os.Stat(scriptPath); err != nil {
		m.log.Errorf(ctx, "engine script missing: path=%s, error=%v", scriptPath, err)
		return nil, errorx.ErrEngineUnavailable
	}

	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal engine payload failed: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, m.pythonBin, scriptPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	n := m.inFlight.Inc()
	defer m.inFlight.Dec()
	m.log.Debugf(ctx, "spawning engine process: script=%s, payload_bytes=%d, in_flight=%d", script, len(input), n)

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		// 超时或调用方取消，进程已被杀死
		if runCtx.Err() != nil {
			m.log.Errorf(ctx, "engine process killed: script=%s, duration=%v, reason=%v", script, duration, runCtx.Err())
			return nil, fmt.Errorf("engine %s aborted after %v: %w", script, duration, runCtx.Err())
		}

		// 非零退出：丢弃已累积的 stdout，保留 stderr 诊断文本
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			m.log.Errorf(ctx, "engine process failed: script=%s, exit_code=%d, stderr=%s",
				script, exitErr.ExitCode(), stderr.String())
			return nil, errorx.NewEngineExecutionError(script, exitErr.ExitCode(), stderr.String())
		}

		return nil, fmt.Errorf("spawn engine %s failed: %w", script, err)
	}

	raw := bytes.TrimSpace(stdout.Bytes())
	if len(raw) == 0 || !json.Valid(raw) {
		m.log.Errorf(ctx, "engine output malformed: script=%s, raw=%s", script, string(raw))
		return nil, errorx.NewEngineOutputMalformed(script, string(raw))
	}

	m.log.Infof(ctx, "engine process finished: script=%s, duration=%v, output_bytes=%d", script, duration, len(raw))
	return json.RawMessage(raw), nil
}
