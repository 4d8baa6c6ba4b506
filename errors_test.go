package partcat_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/partcat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := partcat.Errorf(partcat.ENOTFOUND, "component %q not found", "C9999")

	assert.Equal(t, partcat.ENOTFOUND, partcat.ErrorCode(err))
	assert.Equal(t, "component \"C9999\" not found", partcat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, partcat.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch shard: %w", partcat.Errorf(partcat.EINVALID, "bad payload"))

	assert.Equal(t, partcat.EINVALID, partcat.ErrorCode(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, partcat.EINTERNAL, partcat.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, partcat.ErrorMessage(nil))
}
