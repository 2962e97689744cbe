package storefront

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinReturnsTaskResult(t *testing.T) {
	var output bytes.Buffer
	ran := false

	err := Spin(context.Background(), &output, "Loading...", func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestSpinPropagatesTaskError(t *testing.T) {
	var output bytes.Buffer
	taskErr := errors.New("upstream unavailable")

	err := Spin(context.Background(), &output, "Loading...", func(ctx context.Context) error {
		return taskErr
	})

	require.ErrorIs(t, err, taskErr)
}
