package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// candidateLogPaths in preference order. The system path needs root, which
// the tool requires anyway; the temp path covers test runs.
func candidateLogPaths() []string {
	return []string{
		"/var/log/chatwootctl/chatwootctl.log",
		filepath.Join(os.TempDir(), "chatwootctl.log"),
	}
}

// FindWritableLogPath returns the first log path whose directory can be
// created and whose file can be opened for append.
func FindWritableLogPath() (string, error) {
	for _, path := range candidateLogPaths() {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			continue
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			continue
		}
		_ = f.Close()
		return path, nil
	}
	return "", fmt.Errorf("no writable log path found")
}

func openLogFile(path string) (zapcore.WriteSyncer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}
