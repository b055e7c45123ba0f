// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log is a thin, context-aware structured logging facade over zap.
// Call sites look like cockroachdb/cockroach's util/log package
// (Infof/Warningf/Errorf/VEventf taking a context.Context first) without
// pulling in its multi-sink, file-rotating machinery.
package log

import (
	"context"
	"fmt"

	"github.com/cockroachdb/logtags"
	"go.uber.org/zap"
)

var base = newBaseLogger()

func newBaseLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Fall back to a no-op logger rather than panic on construction.
		l = zap.NewNop()
	}
	return l.Sugar()
}

// SetOutputForTesting swaps the base logger, used by tests that want to
// assert on log output. Tests in this module generally don't; it exists so
// callers embedding this package can redirect it.
func SetOutputForTesting(l *zap.Logger) {
	base = l.Sugar()
}

func withTags(ctx context.Context, format string, args []interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if tags := logtags.FromContext(ctx); tags != nil {
		return tags.String() + ": " + msg
	}
	return msg
}

// Infof logs at info level, prefixing any logtags carried on ctx.
func Infof(ctx context.Context, format string, args ...interface{}) {
	base.Info(withTags(ctx, format, args))
}

// Warningf logs at warn level.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	base.Warn(withTags(ctx, format, args))
}

// Errorf logs at error level.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	base.Error(withTags(ctx, format, args))
}

// VEventf logs a verbose/debug-level trace event. The verbosity level
// argument mirrors cockroach's log.VEventf(ctx, level, ...) signature but
// is otherwise unused by this facade (there is no verbosity gate here).
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	base.Debug(withTags(ctx, format, args))
}
