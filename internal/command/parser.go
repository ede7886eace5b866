package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
)

// ErrBadCommand is returned for any line that does not form a valid request.
var ErrBadCommand = errors.New("bad command")

// requestPattern matches lines of the shape `Kind(id): seconds message`.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var requestPattern = regexp.MustCompile(`^([A-Za-z_]+)\((\d+)\):\s+(\d+)\s+(.+)$`)

// Parse turns one input line into a validated request. No alarm record is
// allocated here; only a request that passes validation ever reaches the
// registry.
func Parse(line string) (*alarm.Request, error) {
	matches := requestPattern.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return nil, ErrBadCommand
	}

	kind := alarm.RequestKind(matches[1])
	if kind != alarm.KindStart && kind != alarm.KindChange {
		return nil, fmt.Errorf("invalid alarm request %q: %w", matches[1], ErrBadCommand)
	}

	id, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil, fmt.Errorf("alarm id %q: %w", matches[2], ErrBadCommand)
	}

	seconds, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil, fmt.Errorf("alarm seconds %q: %w", matches[3], ErrBadCommand)
	}

	request := &alarm.Request{
		Kind:    kind,
		ID:      id,
		Seconds: seconds,
		Message: strings.TrimSpace(matches[4]),
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrBadCommand)
	}

	return request, nil
}
