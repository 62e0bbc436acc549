package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asyncmock/pkg/async"
	"asyncmock/pkg/result/observable"
)

var errTest = errors.New("test error")

func TestSequenceKeepsOrder(t *testing.T) {
	got, err := observable.Sequence(1, 2, 3).Resolve().Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSequenceCopiesInput(t *testing.T) {
	values := []string{"a", "b"}
	r := observable.Sequence(values...)
	values[0] = "changed"

	got, err := r.Resolve().Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestValue(t *testing.T) {
	got, err := observable.Value("only").Resolve().Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got)
}

func TestGenerate(t *testing.T) {
	r := observable.Generate(func(e async.Emitter[int]) {
		e.Next(10)
		e.Next(20)
		e.Error(errTest)
	})

	m, err := r.Resolve().Materialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, m.Values)
	assert.ErrorIs(t, m.Err, errTest)
	assert.False(t, m.Completed)
}

func TestThrow(t *testing.T) {
	got, err := observable.Throw[int](errTest).Resolve().Collect(context.Background())
	assert.ErrorIs(t, err, errTest)
	assert.Empty(t, got)
}

func TestNilCompletesEmpty(t *testing.T) {
	var r *observable.Result[int]
	got, err := r.Resolve().Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
