package completable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"asyncmock/pkg/result/completable"
)

func TestCompleted(t *testing.T) {
	assert.NoError(t, completable.Completed().Resolve().Await(context.Background()))
}

func TestThrow(t *testing.T) {
	errTest := errors.New("test error")
	assert.ErrorIs(t, completable.Throw(errTest).Resolve().Await(context.Background()), errTest)
}

func TestNilCompletes(t *testing.T) {
	var r *completable.Result
	assert.NoError(t, r.Resolve().Await(context.Background()))
}
