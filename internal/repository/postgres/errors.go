package postgres

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"glamstore/internal/repository"
)

// translate maps gorm errors onto the repository sentinels. The connection
// must be opened with TranslateError so duplicate keys surface as
// gorm.ErrDuplicatedKey.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(repository.ErrNotFound, msg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrap(repository.ErrConflict, msg)
	default:
		return errors.Wrap(err, msg)
	}
}

// isUUID reports whether id can be compared against a uuid column without
// the query failing.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func uuids(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
