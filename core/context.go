// Package core 提供贯穿一次图生成运行的显式上下文。
package core

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// RunContext 是一次图生成运行的作用域状态：
// 结构化日志器与匿名实体计数器都挂在这里显式传递，不使用全局状态。
type RunContext struct {
	logger      *zap.Logger
	anonCounter atomic.Uint64
}

// NewRunContext 创建一个运行上下文。logger 为 nil 时退化为 no-op。
func NewRunContext(logger *zap.Logger) *RunContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunContext{logger: logger}
}

// Logger 返回运行作用域的日志器
func (c *RunContext) Logger() *zap.Logger {
	return c.logger
}

// AnonymousName 为匿名命名空间/struct/union 生成合成唯一名。
// 括号形式保证不会与任何真实 C++ 标识符冲突。
func (c *RunContext) AnonymousName() string {
	n := c.anonCounter.Add(1)
	return fmt.Sprintf("(anonymous_%d)", n)
}

// DisplayName 为空的类型打印表示提供占位显示名
func DisplayName(name string) string {
	if name == "" {
		return "(anonymous)"
	}
	return name
}
