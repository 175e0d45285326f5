package hr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMock_Reproducible(t *testing.T) {
	first := NewMock(7).Managers(1000)
	second := NewMock(7).Managers(1000)
	require.Equal(t, first, second)
}

func TestMock_SeedsDiffer(t *testing.T) {
	require.NotEqual(t, NewMock(1).Managers(10), NewMock(2).Managers(10))
}

func TestMock_SequentialIds(t *testing.T) {
	m := NewMock(3)
	for i, mgr := range m.Managers(5) {
		require.Equal(t, int64(i+1), mgr.ID)
	}

	// Ids keep counting across calls
	require.Equal(t, int64(6), m.Manager().ID)
}

func TestMock_RealisticFields(t *testing.T) {
	for _, mgr := range NewMock(11).Managers(100) {
		require.NotEmpty(t, mgr.Name)
		require.NotEmpty(t, mgr.Department)
		require.GreaterOrEqual(t, mgr.Salary, 45000.0)
		require.LessOrEqual(t, mgr.Salary, 250000.0)
	}
}

func TestMock_ManagerStream(t *testing.T) {
	expected := NewMock(42).Managers(25)

	s := NewMock(42).ManagerStream(25)
	got, err := s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, expected, got)

	// Re-collection restarts from the seed
	again, err := s.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, expected, again)
}

func TestMock_ManagerStreamComposes(t *testing.T) {
	wellPaid := 0
	for _, mgr := range NewMock(9).Managers(50) {
		if mgr.Salary > 100000 {
			wellPaid++
		}
	}

	require.Equal(t, wellPaid,
		NewMock(9).ManagerStream(50).
			Filter(func(m Manager) bool { return m.Salary > 100000 }).
			MustCount())
}

func TestManager_String(t *testing.T) {
	m := Manager{ID: 3, Name: "Dana Fox", Department: "Markets", Salary: 98765.5}
	require.Equal(t, "#3 Dana Fox (Markets) $98765.50", m.String())
}
