package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type kvRepositorySuite struct {
	kvContractSuite

	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestKVRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	suite.Run(t, new(kvRepositorySuite))
}

// before all tests in the suite
func (suite *kvRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)
	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	// init script already created the table, this must be a no-op
	suite.Require().NoError(repository.Migrate(ctx, suite.pool))

	suite.store = repository.NewKV(suite.pool)
}

// after all tests in the suite
func (suite *kvRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

func (suite *kvRepositorySuite) TestSetWithOuterTx() {
	tests := []struct {
		name     string
		commit   bool
		wantFind bool
	}{
		{
			name:     "outer tx committed: visible",
			commit:   true,
			wantFind: true,
		},
		{
			name:     "outer tx rolled back: not visible",
			commit:   false,
			wantFind: false,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			tx, err := suite.pool.Begin(ctx)
			require.NoError(t, err)

			entry := randomEntry()
			err = repository.NewKVWithTx(tx).Set(ctx, entry)
			require.NoError(t, err)

			if tt.commit {
				require.NoError(t, tx.Commit(ctx))
			} else {
				require.NoError(t, tx.Rollback(ctx))
			}

			got, err := suite.store.Get(ctx, entry.Key)
			if !tt.wantFind {
				require.ErrorIs(t, err, domain.ErrKeyNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entry.Value, got)
		})
	}
}

func (suite *kvRepositorySuite) TestGetEmptyKey() {
	t := suite.T()

	_, err := suite.store.Get(t.Context(), "")
	require.EqualError(t, err, "key is empty")
}

func (suite *kvRepositorySuite) TestSetBothCartKeys() {
	t := suite.T()
	ctx := t.Context()

	prefix := gofakeit.Username() + ":"
	err := suite.store.Set(ctx,
		domain.Entry{Key: prefix + "cartItems", Value: "[]"},
		domain.Entry{Key: prefix + "cartTotal", Value: "0"},
	)
	require.NoError(t, err)

	total, err := suite.store.Get(ctx, prefix+"cartTotal")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
