package repository_test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// kvContractSuite holds the behaviour every port.KVStore backend shares.
// Backend suites embed it and assign store in their setup.
type kvContractSuite struct {
	suite.Suite

	store port.KVStore
}

func (suite *kvContractSuite) TestSet() {
	tests := []struct {
		name      string
		entries   []domain.Entry
		wantError string
	}{
		{
			name:    "set single entry: ok",
			entries: []domain.Entry{randomEntry()},
		},
		{
			name:    "set several entries: ok",
			entries: []domain.Entry{randomEntry(), randomEntry()},
		},
		{
			name:    "set empty value: ok",
			entries: []domain.Entry{{Key: gofakeit.UUID(), Value: ""}},
		},
		{
			name:    "set nothing: ok",
			entries: nil,
		},
		{
			name:      "set entry with empty key: error",
			entries:   []domain.Entry{randomEntry(), {Key: "", Value: "x"}},
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.store.Set(ctx, tt.entries...)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)

				// nothing of a rejected batch is written
				for _, entry := range tt.entries {
					if entry.Key == "" {
						continue
					}
					_, err := suite.store.Get(ctx, entry.Key)
					require.ErrorIs(t, err, domain.ErrKeyNotFound)
				}
				return
			}
			require.NoError(t, err)

			for _, entry := range tt.entries {
				got, err := suite.store.Get(ctx, entry.Key)
				require.NoError(t, err)
				assert.Equal(t, entry.Value, got)
			}
		})
	}
}

func (suite *kvContractSuite) TestSetOverwrites() {
	t := suite.T()
	ctx := t.Context()

	key := gofakeit.UUID()
	require.NoError(t, suite.store.Set(ctx, domain.Entry{Key: key, Value: "[]"}))
	require.NoError(t, suite.store.Set(ctx, domain.Entry{Key: key, Value: `[{"name":"Rose","price":100}]`}))

	got, err := suite.store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Rose","price":100}]`, got)
}

func (suite *kvContractSuite) TestGetAbsentKey() {
	t := suite.T()

	_, err := suite.store.Get(t.Context(), gofakeit.UUID())
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func randomEntry() domain.Entry {
	return domain.Entry{
		Key:   gofakeit.UUID(),
		Value: gofakeit.Sentence(5),
	}
}
