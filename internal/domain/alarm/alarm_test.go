package alarm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestRequestValidate covers the acceptance and rejection rules for requests.
func TestRequestValidate(t *testing.T) {
	t.Parallel()

	valid := Request{
		Kind:    KindStart,
		ID:      123,
		Seconds: 20,
		Message: "take out the trash",
	}
	require.NoError(t, valid.Validate())

	cases := map[string]struct {
		mutate func(r *Request)
		want   error
	}{
		"unknown kind": {
			mutate: func(r *Request) { r.Kind = "Cancel_Alarm" },
			want:   ErrUnknownKind,
		},
		"negative id": {
			mutate: func(r *Request) { r.ID = -1 },
			want:   ErrNegativeID,
		},
		"negative seconds": {
			mutate: func(r *Request) { r.Seconds = -5 },
			want:   ErrNegativeSeconds,
		},
		"empty message": {
			mutate: func(r *Request) { r.Message = "" },
			want:   ErrEmptyMessage,
		},
		"oversized message": {
			mutate: func(r *Request) { r.Message = strings.Repeat("x", MaxMessageLength+1) },
			want:   ErrMessageTooLong,
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := valid
			tc.mutate(&req)

			require.ErrorIs(t, req.Validate(), tc.want)
		})
	}

	// The limit itself is allowed.
	boundary := valid
	boundary.Message = strings.Repeat("x", MaxMessageLength)
	require.NoError(t, boundary.Validate())

	// Change requests are accepted too.
	change := valid
	change.Kind = KindChange
	require.NoError(t, change.Validate())
}

// TestNewAnchorsExpiry verifies expiry computation and the Remaining/Expired helpers.
func TestNewAnchorsExpiry(t *testing.T) {
	t.Parallel()

	now := time.Unix(1000, 0)
	req := &Request{
		Kind:    KindStart,
		ID:      7,
		Seconds: 20,
		Message: "hello",
	}

	a := New(req, now)

	require.Equal(t, 7, a.ID)
	require.Equal(t, 20, a.Seconds)
	require.Equal(t, now.Add(20*time.Second), a.ExpiresAt)
	require.Equal(t, KindStart, a.Kind)
	require.False(t, a.Changed)

	require.Equal(t, 20*time.Second, a.Remaining(now))
	require.False(t, a.Expired(now))
	require.True(t, a.Expired(now.Add(20*time.Second)))
	require.Negative(t, a.Remaining(now.Add(time.Minute)))

	// Zero duration expires immediately.
	instant := New(&Request{Kind: KindStart, ID: 5, Message: "x"}, now)
	require.True(t, instant.Expired(now))
}

// TestAlarmClone verifies that Clone returns a copy and handles nil safely.
func TestAlarmClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Alarm)(nil).Clone())

	a := &Alarm{
		ID:        1,
		Seconds:   3,
		ExpiresAt: time.Unix(2000, 0),
		Message:   "hi",
		Changed:   true,
		Kind:      KindChange,
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
}
