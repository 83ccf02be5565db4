package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignal_ListenersRunInRegistrationOrder(t *testing.T) {
	s := NewSignal()

	var order []int
	s.Subscribe(func() { order = append(order, 1) })
	s.Subscribe(func() { order = append(order, 2) })
	s.Subscribe(func() { order = append(order, 3) })

	s.Emit()
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestSignal_PanickingListenerDoesNotStarveOthers(t *testing.T) {
	s := NewSignal()

	var ran []string
	s.Subscribe(func() { ran = append(ran, "a") })
	s.Subscribe(func() { panic("boom") })
	s.Subscribe(func() { ran = append(ran, "c") })

	require.NotPanics(t, func() { s.Emit() })
	require.Equal(t, []string{"a", "c"}, ran)
}

func TestSignal_Unsubscribe(t *testing.T) {
	s := NewSignal()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Emit()
	unsubscribe()
	s.Emit()

	require.Equal(t, 1, calls)

	// unsubscribing twice is harmless
	require.NotPanics(t, unsubscribe)
}

func TestSignal_EmitWithoutListeners(t *testing.T) {
	require.NotPanics(t, func() { NewSignal().Emit() })
}
