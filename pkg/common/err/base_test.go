package err

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "full",
			err:  New("argecho", "WRITE_FAILED", "echo", "short write", io.ErrShortWrite),
			want: "[argecho][WRITE_FAILED]: echo: short write: short write",
		},
		{
			name: "no_code",
			err:  New("config", "", "load", "", nil),
			want: "[config]: load",
		},
		{
			name: "cause_only",
			err:  &Error{Err: io.EOF},
			want: "EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	sentinel := New("argecho", "MISSING_ARGUMENTS", "", "", nil)
	e := New("argecho", "MISSING_ARGUMENTS", "capture", "need more", nil)

	assert.True(t, errors.Is(e, sentinel))
	assert.False(t, errors.Is(e, New("argecho", "OTHER", "", "", nil)))
	assert.False(t, errors.Is(New("x", "", "", "", nil), New("y", "", "", "", nil)))
}

func TestIsCode_WalksChain(t *testing.T) {
	inner := New("config", CodeNotFound, "get", "", nil)
	outer := fmt.Errorf("command: %w", WrapWithCode(inner, "kb", CodeInternal, "run"))

	assert.True(t, IsCode(outer, CodeNotFound))
	assert.True(t, IsCode(outer, CodeInternal))
	assert.False(t, IsCode(outer, CodeValidation))
	assert.Equal(t, CodeInternal, GetCode(outer))
	assert.Equal(t, "kb", GetPackage(outer))
	assert.Equal(t, "run", GetOp(outer))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "p", "op"))
	assert.Nil(t, WrapWithCode(nil, "p", CodeIO, "op"))
}

func TestWithContext(t *testing.T) {
	e := New("argecho", CodeInvalidInput, "capture", "", nil).WithContext("argc", 1)

	assert.Equal(t, 1, e.GetContext("argc"))
	assert.Nil(t, e.GetContext("missing"))
}
