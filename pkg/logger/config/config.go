package config

import (
	"fmt"
	"time"
)

// log levels, matching zapcore numbering
const (
	DEBUG_LEVEL = iota - 1
	INFO_LEVEL
	WARN_LEVEL
	ERROR_LEVEL
)

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return fmt.Errorf("config: unknown log level %d", c.Level)
	}

	if c.TimeFormat == "" {
		return fmt.Errorf("config: empty log time format")
	}

	// a layout that cannot format the reference time is unusable
	if formatted := time.Now().Format(c.TimeFormat); formatted == "" {
		return fmt.Errorf("config: invalid log time format %q", c.TimeFormat)
	}

	return nil
}
