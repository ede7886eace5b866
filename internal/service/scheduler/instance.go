package scheduler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning indicates another scheduler instance owns the terminal.
var ErrAlreadyRunning = errors.New("another alarm scheduler instance is already running")

// anotherInstanceRunning scans the process table for a second process with
// this binary's executable name. Two interactive schedulers would fight over
// stdin and the metrics port, so startup refuses unless overridden.
func anotherInstanceRunning() (bool, error) {
	self, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve own executable: %w", err)
	}

	executable := filepath.Base(self)

	processList, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == executable {
			return true, nil
		}
	}

	return false, nil
}
