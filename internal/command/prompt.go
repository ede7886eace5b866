package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/logger"
	"github.com/oshokin/alarm-scheduler/internal/registry"
)

// Submitter accepts validated requests for scheduling.
type Submitter interface {
	Submit(ctx context.Context, req *alarm.Request) error
}

// prompt is printed before each input line.
const prompt = "alarm> "

// RunPrompt reads request lines from in until EOF or context cancellation,
// parses them and hands valid requests to the submitter. Malformed lines and
// rejected changes are reported on out and do not stop the loop.
func RunPrompt(ctx context.Context, in io.Reader, out io.Writer, submitter Submitter) error {
	scanner := bufio.NewScanner(in)
	lines := make(chan string)

	// Reading may block indefinitely on interactive input, so scanning runs
	// on its own goroutine and the loop below stays cancelable.
	go func() {
		defer close(lines)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}

				return nil
			}

			if strings.TrimSpace(line) == "" {
				continue
			}

			handleLine(ctx, out, submitter, line)
		}
	}
}

// handleLine parses and submits one input line, reporting problems on out.
func handleLine(ctx context.Context, out io.Writer, submitter Submitter, line string) {
	request, err := Parse(line)
	if err != nil {
		logger.DebugKV(ctx, "Rejected input line", "line", line, "error", err)
		fmt.Fprintln(out, "Bad command")

		return
	}

	if err := submitter.Submit(ctx, request); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			fmt.Fprintf(out, "Bad command, Alarm ID (%d) not found\n", request.ID)

			return
		}

		logger.ErrorKV(ctx, "Submit failed", "id", request.ID, "error", err)
		fmt.Fprintln(out, "Bad command")
	}
}
