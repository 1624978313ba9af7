package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorCodes(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name string
		err  *AppError
		code string
	}{
		{"config", ConfigInvalid("bad port"), CodeConfigInvalid},
		{"input missing", InputMissing("data.csv"), CodeInputMissing},
		{"invalid input", InvalidInput("no rows"), CodeInvalidInput},
		{"not found", NotFound("country"), CodeNotFound},
		{"type not found", TypeNotFound("ABCD"), CodeTypeNotFound},
		{"computation", ComputationFailed(cause), CodeComputationFailed},
		{"render", RenderFailed("top", cause), CodeRenderFailed},
		{"internal", InternalError("oops"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.True(t, HasCode(tt.err, tt.code))
		})
	}

	assert.Equal(t, "data file data.csv not found", InputMissing("data.csv").Error())
	assert.Equal(t, "error while computing chart data: boom", ComputationFailed(cause).Error())
	assert.Same(t, cause, stderrors.Unwrap(ComputationFailed(cause)))
}

func TestWrapKeepsCode(t *testing.T) {
	wrapped := Wrap(TypeNotFound("ABCD"), "top panel")
	assert.Equal(t, CodeTypeNotFound, GetCode(wrapped))
	assert.Equal(t, `top panel: MBTI type "ABCD" does not exist in the data`, wrapped.Error())

	plain := Wrapf(fmt.Errorf("disk full"), "writing %s", "out.xlsx")
	assert.Equal(t, CodeInternalError, GetCode(plain))
	assert.Equal(t, "writing out.xlsx: disk full", plain.Error())

	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestWithCodeReplacesCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, fmt.Errorf("bad csv"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "bad csv", err.Error())

	recoded := WithCode(CodeComputationFailed, NotFound("country"))
	assert.Equal(t, CodeComputationFailed, GetCode(recoded))
	assert.False(t, HasCode(recoded, CodeNotFound))

	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := InputMissing("data.csv")
	chain := fmt.Errorf("loading table: %w", ComputationFailed(inner))

	assert.Equal(t, CodeComputationFailed, GetCode(chain))
	assert.True(t, HasCode(chain, CodeComputationFailed))
	assert.True(t, HasCode(chain, CodeInputMissing))
	assert.False(t, HasCode(chain, CodeTypeNotFound))

	assert.False(t, HasCode(nil, CodeInputMissing))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}
