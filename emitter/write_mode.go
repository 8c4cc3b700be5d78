package emitter

import (
	"fmt"
	"os"
)

// WriteMode selects whether the target is truncated or appended to.
type WriteMode string

const (
	WriteModeWrite  WriteMode = "write"
	WriteModeAppend WriteMode = "append"
)

func (m WriteMode) String() string {
	return string(m)
}

// ParseWriteMode converts a flag value into a WriteMode.
func ParseWriteMode(value string) (WriteMode, error) {
	switch mode := WriteMode(value); mode {
	case WriteModeWrite, WriteModeAppend:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown write mode: %s (valid options: %s, %s)", value, WriteModeWrite, WriteModeAppend)
	}
}

func (m WriteMode) openFlags() (int, error) {
	switch m {
	case WriteModeWrite:
		return os.O_CREATE | os.O_WRONLY | os.O_TRUNC, nil
	case WriteModeAppend:
		return os.O_CREATE | os.O_WRONLY | os.O_APPEND, nil
	default:
		return 0, fmt.Errorf("unknown write mode: %s", m)
	}
}
