package initializer

import (
	"bytes"
	"context"
	"testing"

	"github.com/amirasaad/finhub/infra/repository/memory"
	"github.com/amirasaad/finhub/pkg/config"
	"github.com/amirasaad/finhub/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStore_MemoryDriver(t *testing.T) {
	repos, closeStore, err := initStore(&config.App{DB: &config.DB{Driver: "memory"}}, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, closeStore)
	assert.IsType(t, &memory.Store{}, repos)
}

func TestInitStore_MissingURLInstallsUnavailableGateway(t *testing.T) {
	repos, closeStore, err := initStore(&config.App{DB: &config.DB{Driver: "postgres"}}, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, closeStore)

	_, err = repos.UserRepository().FindByAlias(context.Background(), "someone")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, repos.Ping(context.Background()), domain.ErrStoreUnavailable)
}

func TestInitStore_UnknownDriver(t *testing.T) {
	_, _, err := initStore(&config.App{DB: &config.DB{Driver: "mysql"}}, discardLogger())
	assert.Error(t, err)
}

func TestInitializeDependencies_Memory(t *testing.T) {
	deps, err := InitializeDependencies(&config.App{
		Log:      &config.Log{Format: "json"},
		DB:       &config.DB{Driver: "memory"},
		EventBus: &config.EventBus{Driver: "memory", QueueSize: 4, Workers: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, deps.Logger)
	require.NoError(t, deps.EventBus.Close(context.Background()))
}

func TestInitializeDependencies_BadBusClosesNothing(t *testing.T) {
	_, err := InitializeDependencies(&config.App{
		DB:       &config.DB{Driver: "memory"},
		EventBus: &config.EventBus{Driver: "carrier-pigeon"},
	})
	assert.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", Level: 0})

	logger.Info("hello", "loan_id", "abc")
	logger.Debug("hidden")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"loan_id":"abc"`)
	assert.NotContains(t, buf.String(), "hidden")
}
