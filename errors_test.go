package sdk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSDKError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SDKError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewCaptureError("Validator.Validate", errors.New("scene file locked")),
			want: "sdk: Validator.Validate (capture): scene file locked",
		},
		{
			name: "without underlying error",
			err:  &SDKError{Op: "Validator.Validate", Kind: KindInternal},
			want: "sdk: Validator.Validate: internal",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSDKError_ErrorWithContext(t *testing.T) {
	err := NewEvaluationError("Engine.Run", errors.New("rule faulted")).
		WithContext(map[string]any{"rule": "mesh.poly-budget"})
	assert.Contains(t, err.Error(), "rule faulted")
	assert.Contains(t, err.Error(), "mesh.poly-budget")
}

func TestSDKError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewInternalError("op", fmt.Errorf("wrapped: %w", inner))

	assert.True(t, errors.Is(err, inner))
	assert.Equal(t, "wrapped: boom", errors.Unwrap(err).Error())
}

func TestSDKError_IsMatchesSentinels(t *testing.T) {
	err := NewConfigurationError("NewValidator", ErrNoAdapter)
	assert.True(t, errors.Is(err, ErrNoAdapter))
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestSDKError_IsMatchesKind(t *testing.T) {
	err := NewCaptureError("Validator.Validate", errors.New("io error"))

	assert.True(t, errors.Is(err, &SDKError{Kind: KindCapture}))
	assert.True(t, errors.Is(err, &SDKError{Kind: KindCapture, Op: "Validator.Validate"}))
	assert.False(t, errors.Is(err, &SDKError{Kind: KindConfiguration}))
	assert.False(t, errors.Is(err, &SDKError{Kind: KindCapture, Op: "other"}))
}

func TestSDKError_WithContextCopies(t *testing.T) {
	base := NewValidationError("op", errors.New("bad input"))
	derived := base.WithContext(map[string]any{"node": "/meshes/Body"})

	require.NotSame(t, base, derived)
	assert.Nil(t, base.Context, "the original error stays untouched")
	assert.Equal(t, "/meshes/Body", derived.Context["node"])

	// Chaining merges rather than replaces.
	more := derived.WithContext(map[string]any{"rule": "mesh.uv-channels"})
	assert.Equal(t, "/meshes/Body", more.Context["node"])
	assert.Equal(t, "mesh.uv-channels", more.Context["rule"])
}

func TestErrorConstructors(t *testing.T) {
	inner := errors.New("cause")
	tests := []struct {
		name string
		err  *SDKError
		kind string
	}{
		{"validation", NewValidationError("op", inner), KindValidation},
		{"configuration", NewConfigurationError("op", inner), KindConfiguration},
		{"capture", NewCaptureError("op", inner), KindCapture},
		{"evaluation", NewEvaluationError("op", inner), KindEvaluation},
		{"internal", NewInternalError("op", inner), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, "op", tt.err.Op)
			assert.True(t, errors.Is(tt.err, inner))
		})
	}
}
