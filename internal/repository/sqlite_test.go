package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type sqliteKVSuite struct {
	kvContractSuite

	path string
}

func TestSQLiteKVSuite(t *testing.T) {
	suite.Run(t, new(sqliteKVSuite))
}

func (suite *sqliteKVSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "nested", "cart.db")

	var err error
	suite.store, err = repository.NewSQLiteKV(suite.T().Context(), suite.path)
	suite.Require().NoError(err)
}

func (suite *sqliteKVSuite) TearDownTest() {
	if suite.store != nil {
		suite.NoError(suite.store.Close())
	}
}

func (suite *sqliteKVSuite) TestSurvivesReopen() {
	t := suite.T()
	ctx := t.Context()

	require.NoError(t, suite.store.Set(ctx,
		domain.Entry{Key: "cartItems", Value: `[{"name":"Lily","price":150}]`},
		domain.Entry{Key: "cartTotal", Value: "150"},
	))
	require.NoError(t, suite.store.Close())

	reopened, err := repository.NewSQLiteKV(ctx, suite.path)
	require.NoError(t, err)
	suite.store = reopened

	got, err := reopened.Get(ctx, "cartTotal")
	require.NoError(t, err)
	assert.Equal(t, "150", got)
}

func TestNewSQLiteKV_EmptyPath(t *testing.T) {
	_, err := repository.NewSQLiteKV(t.Context(), "")
	require.EqualError(t, err, "path is empty")
}
