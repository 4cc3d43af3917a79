//go:build unit

package infra

import (
	"io"
	"log/slog"
	"testing"

	"club-roster/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cause := errs.New("connection refused")

	err := WrapRepoErr(logger, KindUpstreamFailure, "fetch registry", cause)

	assert.True(t, IsKind(err, KindUpstreamFailure))
	assert.False(t, IsKind(err, KindDBFailure))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "UPSTREAM_FAILURE: fetch registry")

	kind, ok := KindOf(errs.Wrap(err, "outer"))
	assert.True(t, ok)
	assert.Equal(t, KindUpstreamFailure, kind)
}

func TestWrapRepoErr_NilCause(t *testing.T) {
	err := WrapRepoErr(nil, KindNotFound, "no entry", nil)

	assert.Equal(t, "NOT_FOUND: no entry", err.Error())
	_, ok := KindOf(errs.New("plain"))
	assert.False(t, ok)
}
