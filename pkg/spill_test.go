package pkg

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Value int
}

func TestSpill_AppendAndRange(t *testing.T) {
	spill, err := NewSpill[record]("spill-test-*.gob")
	require.NoError(t, err)
	defer func() { require.NoError(t, spill.Close()) }()

	require.NoError(t, spill.Append(record{ID: "a", Value: 1}))
	require.NoError(t, spill.Append(record{ID: "b", Value: 2}))
	require.Equal(t, 2, spill.Len())

	var got []record
	require.NoError(t, spill.Range(func(r record) error {
		got = append(got, r)
		return nil
	}))

	require.Equal(t, []record{{ID: "a", Value: 1}, {ID: "b", Value: 2}}, got)
}

func TestSpill_RangeStopsOnCallbackError(t *testing.T) {
	spill, err := NewSpill[record]("spill-test-*.gob")
	require.NoError(t, err)
	defer func() { require.NoError(t, spill.Close()) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, spill.Append(record{Value: i}))
	}

	boom := errors.New("boom")
	seen := 0

	err = spill.Range(func(record) error {
		seen++
		if seen == 3 {
			return boom
		}
		return nil
	})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, seen)
}

func TestSpill_ConcurrentAppend(t *testing.T) {
	spill, err := NewSpill[record]("spill-test-*.gob")
	require.NoError(t, err)
	defer func() { require.NoError(t, spill.Close()) }()

	var group sync.WaitGroup

	for i := 0; i < 10; i++ {
		group.Add(1)

		go func(n int) {
			defer group.Done()
			_ = spill.Append(record{Value: n})
		}(i)
	}

	group.Wait()

	require.Equal(t, 10, spill.Len())
}

func TestSpill_AppendAfterClose(t *testing.T) {
	spill, err := NewSpill[record]("spill-test-*.gob")
	require.NoError(t, err)

	require.NoError(t, spill.Close())
	require.Error(t, spill.Append(record{}))

	// Closing twice is harmless.
	require.NoError(t, spill.Close())
}
