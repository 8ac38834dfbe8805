package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpErrorMessage(t *testing.T) {
	err := IOFailure("linecount.count_file", "src/A.java", fs.ErrPermission)
	assert.Equal(t, "linecount.count_file: io_failure (path=src/A.java): permission denied", err.Error())

	noPath := &OpError{Op: "scan.walk", Kind: KindTraversal}
	assert.Equal(t, "scan.walk: traversal_failure", noPath.Error())

	var nilErr *OpError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestOpErrorMatchesSentinels(t *testing.T) {
	ioErr := fmt.Errorf("run: %w", IOFailure("op", "a.java", fs.ErrPermission))
	assert.True(t, errors.Is(ioErr, ErrIOFailure))
	assert.False(t, errors.Is(ioErr, ErrTraversalFailure))
	assert.True(t, errors.Is(ioErr, fs.ErrPermission), "underlying error stays reachable")

	walkErr := TraversalFailure("op", ".", fs.ErrNotExist)
	assert.True(t, errors.Is(walkErr, ErrTraversalFailure))
	assert.False(t, errors.Is(walkErr, ErrIOFailure))
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", IOFailure("op", "x.java", ErrInvalidEncoding))
	require.True(t, IsKind(wrapped, KindIO))
	assert.False(t, IsKind(wrapped, KindTraversal))
	assert.False(t, IsKind(errors.New("plain"), KindIO))
	assert.True(t, errors.Is(wrapped, ErrInvalidEncoding))
}
