package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSetup(t *testing.T) (*schema.Configuration, *contract.MockGitClient) {
	t.Helper()
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)
	client := &contract.MockGitClient{}
	client.On("GetActivityLog", mock.Anything, ".").Return(sampleActivityLog, nil)
	return cfg, client
}

func TestAuthorsPlugin(t *testing.T) {
	cfg, client := newTestSetup(t)
	plugin := newAuthorsPlugin(cfg, client)

	assert.Equal(t, "authors", plugin.Name())
	require.NoError(t, plugin.Run(context.Background()))

	result := plugin.Result()
	require.NotNil(t, result)

	table, ok := result.(*tableResult)
	require.True(t, ok)
	// Sorted by commit count descending, then name ascending
	require.Len(t, table.rows, 2)
	assert.Equal(t, []string{"Alice", "2"}, table.rows[0])
	assert.Equal(t, []string{"Bob", "1"}, table.rows[1])
}

func TestActivityPlugin(t *testing.T) {
	cfg, client := newTestSetup(t)
	plugin := newActivityPlugin(cfg, client)

	assert.Equal(t, "activity", plugin.Name())
	require.NoError(t, plugin.Run(context.Background()))

	table, ok := plugin.Result().(*tableResult)
	require.True(t, ok)
	require.Len(t, table.rows, 7)

	// Sample commits fall on Monday, Tuesday and Wednesday
	assert.Equal(t, []string{"Sunday", "0"}, table.rows[0])
	assert.Equal(t, []string{"Monday", "1"}, table.rows[1])
	assert.Equal(t, []string{"Tuesday", "1"}, table.rows[2])
	assert.Equal(t, []string{"Wednesday", "1"}, table.rows[3])
	assert.Equal(t, []string{"Saturday", "0"}, table.rows[6])
}

func TestChurnPlugin(t *testing.T) {
	cfg, client := newTestSetup(t)
	plugin := newChurnPlugin(cfg, client)

	assert.Equal(t, "churn", plugin.Name())
	require.NoError(t, plugin.Run(context.Background()))

	table, ok := plugin.Result().(*tableResult)
	require.True(t, ok)
	require.Len(t, table.rows, 2)
	// Alice: 3+1 from the first commit, 5+2 from the third
	assert.Equal(t, []string{"Alice", "8", "3"}, table.rows[0])
	// Bob only touched a binary file
	assert.Equal(t, []string{"Bob", "0", "0"}, table.rows[1])
}

func TestPluginRunIsIdempotent(t *testing.T) {
	cfg, _ := newTestSetup(t)
	client := &contract.MockGitClient{}
	client.On("GetActivityLog", mock.Anything, ".").Return(sampleActivityLog, nil).Once()

	plugin := newAuthorsPlugin(cfg, client)
	require.NoError(t, plugin.Run(context.Background()))
	first := plugin.Result()

	// Second run must not hit git again and keeps the same result
	require.NoError(t, plugin.Run(context.Background()))
	assert.Same(t, first, plugin.Result())
	client.AssertExpectations(t)
}

func TestPluginRunPropagatesGitError(t *testing.T) {
	cfg, _ := newTestSetup(t)
	client := &contract.MockGitClient{}
	client.On("GetActivityLog", mock.Anything, ".").Return(nil, errors.New("git not found"))

	plugin := newChurnPlugin(cfg, client)
	err := plugin.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, plugin.Result())
}

func TestTableResultRenderings(t *testing.T) {
	cfg, client := newTestSetup(t)
	plugin := newAuthorsPlugin(cfg, client)
	require.NoError(t, plugin.Run(context.Background()))

	result := plugin.Result()

	text := result.String()
	assert.Contains(t, text, "Commits per author")
	assert.Contains(t, text, "Alice")

	html := result.HTML()
	assert.Contains(t, html, `<div class="visulog-authors">`)
	assert.Contains(t, html, "<h2>Commits per author</h2>")
	assert.Contains(t, html, "<td>Alice</td>")
	assert.Contains(t, html, "</div>")
}
