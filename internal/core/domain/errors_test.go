package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorVariants(t *testing.T) {
	tests := []struct {
		err     error
		kind    error
		message string
	}{
		{ErrClientNotFound, ErrNotFound, "client not found"},
		{ErrEngineerNotFound, ErrNotFound, "engineer not found"},
		{ErrRecordNotFound, ErrNotFound, "maintenance record not found"},
		{ErrMemoNotFound, ErrNotFound, "memo not found"},
		{ErrAmbiguousClient, ErrConflict, "client name matches several clients"},
		{ErrAmbiguousRecordID, ErrConflict, "record id matches several records"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.ErrorIs(t, fmt.Errorf("load: %w", tt.err), tt.kind)
			assert.ErrorIs(t, fmt.Errorf("load: %w", tt.err), tt.err)
			assert.False(t, errors.Is(tt.err, ErrForbidden))
		})
	}

	assert.False(t, errors.Is(ErrClientNotFound, ErrEngineerNotFound))
}
