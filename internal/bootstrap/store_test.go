package bootstrap

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamstore/internal/config"
)

func TestOpenStoreStatic(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := OpenStore(context.Background(), &config.Config{StoreBackend: config.BackendStatic}, log)
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.Equal(t, "static", store.Name())
	products, err := store.Products().FindAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestOpenStoreAutoWithoutDatabase(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := OpenStore(context.Background(), &config.Config{StoreBackend: config.BackendAuto}, log)
	require.NoError(t, err)
	assert.Equal(t, "static", store.Name())
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := OpenStore(context.Background(), &config.Config{StoreBackend: "cassandra"}, log)
	assert.Error(t, err)
}
