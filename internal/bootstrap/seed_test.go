package bootstrap

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamstore/internal/repository"
	"glamstore/internal/repository/fallback"
	"glamstore/pkg/validator"
)

func TestSampleCatalogIsValid(t *testing.T) {
	for _, c := range SampleCategories() {
		assert.Empty(t, validator.ValidateStruct(c), c.Name)
	}
	names := map[string]bool{}
	for _, c := range SampleCategories() {
		names[c.Name] = true
	}
	for _, p := range SampleProducts() {
		assert.Empty(t, validator.ValidateStruct(p), p.Name)
		assert.True(t, names[p.Category], "product %s has unknown category %s", p.Name, p.Category)
	}
}

func TestSeedKeepsExistingAdmin(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := fallback.NewStore(fallback.DefaultDataset())

	// The admin exists and the catalog is not empty, so nothing is written.
	err := Seed(context.Background(), store, SeedOptions{
		AdminName: "Admin", AdminEmail: "admin@example.com", AdminPassword: "admin12345", Catalog: true,
	}, log)
	assert.NoError(t, err)
}

func TestSeedReadOnlyStore(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := fallback.NewStore(fallback.DefaultDataset())

	err := Seed(context.Background(), store, SeedOptions{
		AdminName: "Ops", AdminEmail: "ops@example.com", AdminPassword: "admin12345",
	}, log)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrReadOnly)
}
