package respcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(nil)
	require.NoError(t, err)

	return svc
}

func TestGet_Absent(t *testing.T) {
	svc := newTestService(t)

	_, ok := svc.Get("missing")
	require.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	svc := newTestService(t)

	svc.Set("key", 42, time.Hour)

	v, ok := svc.Get("key")
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestGet_ExpiredEntry(t *testing.T) {
	svc := newTestService(t)

	svc.Set("key", "value", -time.Second)

	_, ok := svc.Get("key")
	require.False(t, ok)
}

func TestSet_OverwritesEntry(t *testing.T) {
	svc := newTestService(t)

	svc.Set("key", 1, time.Hour)
	svc.Set("key", 2, time.Hour)

	v, ok := svc.Get("key")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestLen_CountsOnlyLiveEntries(t *testing.T) {
	svc := newTestService(t)

	svc.Set("live", 1, time.Hour)
	svc.Set("dead", 1, -time.Second)

	require.Equal(t, 1, svc.Len())
}
