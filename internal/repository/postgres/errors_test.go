package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"glamstore/internal/repository"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "noop"))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, "find"), repository.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey, "create"), repository.ErrConflict)

	other := errors.New("connection reset")
	err := translate(other, "find")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "find")
}

func TestIsLocalID(t *testing.T) {
	users := NewUserRepo(nil)

	assert.True(t, users.IsLocalID("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.False(t, users.IsLocalID("user_2abc"))
	assert.False(t, users.IsLocalID("507f1f77bcf86cd799439011"))
	assert.False(t, users.IsLocalID(""))
}

func TestUUIDsFiltersMalformedIDs(t *testing.T) {
	ids := uuids([]string{"3f2504e0-4f89-11d3-9a0c-0305e82c3301", "user_x", "nope"})
	assert.Equal(t, []string{"3f2504e0-4f89-11d3-9a0c-0305e82c3301"}, ids)
}
