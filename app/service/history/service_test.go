package history

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

func TestGet_UnknownConversation(t *testing.T) {
	svc := newTestService(t)

	require.Empty(t, svc.Get("nope"))
}

func TestAppendAndGet(t *testing.T) {
	svc := newTestService(t)

	svc.Append("conv-1", Message{Role: RoleUser, Content: "hi"})
	svc.Append("conv-1", Message{Role: RoleAssistant, Content: "hello"})

	messages := svc.Get("conv-1")
	require.Len(t, messages, 2)
	require.Equal(t, RoleUser, messages[0].Role)
	require.Equal(t, "hello", messages[1].Content)
}

func TestGet_ReturnsCopy(t *testing.T) {
	svc := newTestService(t)

	svc.Append("conv-1", Message{Role: RoleUser, Content: "hi"})

	messages := svc.Get("conv-1")
	messages[0].Content = "mutated"

	require.Equal(t, "hi", svc.Get("conv-1")[0].Content)
}

func TestClear(t *testing.T) {
	svc := newTestService(t)

	svc.Append("conv-1", Message{Role: RoleUser, Content: "hi"})
	svc.Clear("conv-1")

	require.Empty(t, svc.Get("conv-1"))
	require.Zero(t, svc.Len())
}

func TestSweep_EvictsIdleConversations(t *testing.T) {
	svc := newTestService(t)

	base := time.Now()
	svc.Append("idle", Message{Role: RoleUser, Content: "hi"})

	// Just inside the idle threshold: retained.
	require.Zero(t, svc.Sweep(base.Add(3599*time.Second)))
	require.Len(t, svc.Get("idle"), 1)

	// Past the threshold: evicted.
	require.Equal(t, 1, svc.Sweep(base.Add(3602*time.Second)))
	require.Empty(t, svc.Get("idle"))
}

func TestSweep_KeepsActiveConversations(t *testing.T) {
	svc := newTestService(t)

	svc.Append("old", Message{Role: RoleUser, Content: "hi"})
	svc.Append("fresh", Message{Role: RoleUser, Content: "hi"})

	removed := svc.Sweep(time.Now().Add(30 * time.Minute))
	require.Zero(t, removed)
	require.Equal(t, 2, svc.Len())
}
