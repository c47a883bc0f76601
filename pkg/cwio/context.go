// Package cwio carries the per-invocation runtime context: the context.Context
// every blocking operation receives, the scoped logger, and command timing.
package cwio

import (
	"context"
	"time"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// RuntimeContext travels through every operation of a single CLI invocation.
type RuntimeContext struct {
	Ctx       context.Context
	Log       *zap.Logger
	Command   string
	Timestamp time.Time
}

// NewContext builds a RuntimeContext scoped to the named command.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zap.L().With(zap.String("command", cmdName)).Named(cmdName)

	return &RuntimeContext{
		Ctx:       ctx,
		Log:       logger,
		Command:   cmdName,
		Timestamp: time.Now(),
	}
}

// HandlePanic recovers a panic, logs it, and converts it to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs the command outcome with its duration.
func (rc *RuntimeContext) End(errPtr *error) {
	duration := time.Since(rc.Timestamp)
	if *errPtr == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
		return
	}
	rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(*errPtr))
}
