package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/dataexplorer/core/application/catalog"
	"github.com/hyperterse/dataexplorer/core/domain"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

func testModel() *domain.Model {
	return &domain.Model{
		Host: "config.example.com",
		Queries: []*domain.QueryDefinition{
			{Name: "top_users", ID: "42", Description: "Most active users", Params: map[string]string{"months_ago": "1", "limit": "10"}},
			{Name: "flags", ID: "7"},
			{Name: "signups", ID: "8"},
		},
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := catalog.New(testModel(), "forum.example.com", "secret")

	req, err := c.Resolve("top_users", map[string]string{"limit": "5"})
	require.NoError(t, err)

	assert.Equal(t, "top_users", req.Name)
	assert.Equal(t, "Most active users", req.Description)
	assert.Equal(t, "forum.example.com", req.Request.Hostname)
	assert.Equal(t, domain.QueryID("42"), req.Request.ID)
	assert.Equal(t, "secret", req.Request.APIKey)
	assert.Equal(t, map[string]string{"months_ago": "1", "limit": "5"}, req.Request.Params)
	assert.Equal(t, "forum.example.com", c.Hostname())
}

func TestCatalog_ResolveUnknown(t *testing.T) {
	c := catalog.New(testModel(), "forum.example.com", "secret")

	_, err := c.Resolve("missing", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = c.GetQuery("missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalog_ResolveAll(t *testing.T) {
	c := catalog.New(testModel(), "forum.example.com", "secret")

	all, err := c.ResolveAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "top_users", all[0].Name)
	assert.Equal(t, "signups", all[2].Name)

	only, err := c.ResolveAll([]string{"signups", " top_users "})
	require.NoError(t, err)
	require.Len(t, only, 2)
	assert.Equal(t, "top_users", only[0].Name)
	assert.Equal(t, "signups", only[1].Name)

	_, err = c.ResolveAll([]string{"flags", "nope"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalog_ResolveAllReportsFirstUnknownName(t *testing.T) {
	c := catalog.New(testModel(), "forum.example.com", "secret")

	for i := 0; i < 20; i++ {
		_, err := c.ResolveAll([]string{"flags", "zeta", "alpha", "mid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query 'zeta' not found")
	}
}

func TestCatalog_Adhoc(t *testing.T) {
	c := catalog.New(nil, "forum.example.com", "secret")

	req := c.Adhoc(domain.QueryIDFromInt(42), nil)
	assert.Empty(t, req.Name)
	assert.Equal(t, domain.QueryID("42"), req.Request.ID)
	assert.NotNil(t, req.Request.Params)
	assert.Empty(t, c.GetAllQueries())
}
