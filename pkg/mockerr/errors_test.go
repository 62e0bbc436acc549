package mockerr

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "wrong type",
			err:      &WrongTypeError{Expected: reflect.TypeOf(0), Found: reflect.TypeOf("")},
			sentinel: ErrWrongType,
			message:  "wrong type: expected int, found string",
		},
		{
			name:     "wrong type with nil value",
			err:      &WrongTypeError{Expected: reflect.TypeOf(0)},
			sentinel: ErrWrongType,
			message:  "wrong type: expected int, found <nil>",
		},
		{
			name:     "unexpected call",
			err:      &UnexpectedCallError{Function: "MockClient.Get"},
			sentinel: ErrUnexpectedCall,
			message:  "unexpected function call MockClient.Get",
		},
		{
			name:     "decoding with source",
			err:      &DecodingError{Expected: reflect.TypeOf(0), Source: "{", HasSource: true, Err: io.ErrUnexpectedEOF},
			sentinel: ErrDecoding,
			message:  `failed to decode int from "{": unexpected EOF`,
		},
		{
			name:     "decoding from file",
			err:      &DecodingError{Expected: reflect.TypeOf(0), Err: io.ErrUnexpectedEOF},
			sentinel: ErrDecoding,
			message:  "failed to decode int: unexpected EOF",
		},
		{
			name:     "data not found",
			err:      DataNotFound("user.json"),
			sentinel: ErrDataNotFound,
			message:  "data not found: user.json",
		},
		{
			name:     "invalid data",
			err:      InvalidData("not utf-8"),
			sentinel: ErrInvalidData,
			message:  "invalid data: not utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestDecodingErrorUnwraps(t *testing.T) {
	err := &DecodingError{Expected: reflect.TypeOf(""), Err: io.EOF}
	require.ErrorIs(t, err, io.EOF)

	var decErr *DecodingError
	require.True(t, errors.As(error(err), &decErr))
	assert.Equal(t, reflect.TypeOf(""), decErr.Expected)
}

func TestTypeOfInterface(t *testing.T) {
	assert.Equal(t, "error", TypeOf[error]().String())
	assert.Equal(t, "int", TypeOf[int]().String())
	assert.Equal(t, "interface {}", TypeOf[any]().String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "<nil>", Describe(nil))
	assert.Equal(t, "*mockerr.UnexpectedCallError: unexpected function call Get",
		Describe(&UnexpectedCallError{Function: "Get"}))
}
