package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Blank keys are rejected before any query is built, so no database is
// needed here.
func TestPostgresUserLookupsRejectBlankKeys(t *testing.T) {
	r := NewPostgresUserRepository(nil)
	ctx := context.Background()

	_, err := r.GetUserByEmail(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GetUserByIdentifier(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GetUserByFirebaseUID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
