// Copyright (c) The Multithreading Authors. All rights reserved.
// Licensed under the MIT License.

package taskrunner_test

import (
	"os"
	"testing"

	"github.com/pingcap/log"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	// Example output comparisons read stdout, so route library logs to stderr
	// and keep only warnings and above.
	syncer := zapcore.AddSync(os.Stderr)
	logger, props, err := log.InitLoggerWithWriteSyncer(&log.Config{Level: "warn"}, syncer, syncer)
	if err == nil {
		log.ReplaceGlobals(logger, props)
	}
	os.Exit(m.Run())
}
