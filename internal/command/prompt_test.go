package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/registry"
)

// recordingSubmitter captures submitted requests and returns a canned error.
type recordingSubmitter struct {
	// requests stores everything handed to Submit.
	requests []*alarm.Request
	// err is returned from every Submit call.
	err error
}

// Submit records the request and returns the configured error.
func (r *recordingSubmitter) Submit(_ context.Context, req *alarm.Request) error {
	r.requests = append(r.requests, req)

	return r.err
}

// TestRunPromptSubmitsValidLines verifies parsed requests reach the
// submitter and the loop ends cleanly at EOF.
func TestRunPromptSubmitsValidLines(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(
		"Start_Alarm(123): 20 This message\n" +
			"\n" +
			"Change_Alarm(123): 5 New message\n",
	)

	var out strings.Builder

	submitter := new(recordingSubmitter)

	require.NoError(t, RunPrompt(context.Background(), in, &out, submitter))
	require.Len(t, submitter.requests, 2)
	require.Equal(t, alarm.KindStart, submitter.requests[0].Kind)
	require.Equal(t, alarm.KindChange, submitter.requests[1].Kind)
	require.Contains(t, out.String(), "alarm> ")
	require.NotContains(t, out.String(), "Bad command")
}

// TestRunPromptReportsBadCommands verifies malformed lines are reported and
// skipped without stopping the loop.
func TestRunPromptReportsBadCommands(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(
		"gibberish\n" +
			"Start_Alarm(1): 10 still accepted\n",
	)

	var out strings.Builder

	submitter := new(recordingSubmitter)

	require.NoError(t, RunPrompt(context.Background(), in, &out, submitter))
	require.Len(t, submitter.requests, 1)
	require.Contains(t, out.String(), "Bad command")
}

// TestRunPromptReportsUnknownID verifies the not-found rejection message
// names the offending id.
func TestRunPromptReportsUnknownID(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("Change_Alarm(99): 5 x\n")

	var out strings.Builder

	submitter := &recordingSubmitter{
		err: fmt.Errorf("alarm 99: %w", registry.ErrNotFound),
	}

	require.NoError(t, RunPrompt(context.Background(), in, &out, submitter))
	require.Contains(t, out.String(), "Bad command, Alarm ID (99) not found")
}

// TestRunPromptStopsOnCancel verifies context cancellation ends the loop.
func TestRunPromptStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A blocking reader: no input ever arrives.
	in, unblock := newBlockingReader()
	t.Cleanup(func() { close(unblock) })

	require.NoError(t, RunPrompt(ctx, in, &strings.Builder{}, new(recordingSubmitter)))
}

// blockingReader never returns data until closed.
type blockingReader struct {
	// unblock releases the pending Read when closed.
	unblock chan struct{}
}

// newBlockingReader returns a reader that blocks and the channel that
// releases it.
func newBlockingReader() (*blockingReader, chan struct{}) {
	unblock := make(chan struct{})

	return &blockingReader{unblock: unblock}, unblock
}

// Read blocks until the reader is released, then reports EOF.
func (b *blockingReader) Read([]byte) (int, error) {
	<-b.unblock

	return 0, fmt.Errorf("closed")
}
