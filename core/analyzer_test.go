package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/internal/iocache"
	"github.com/huangsam/visulog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnalyzerClient() *contract.MockGitClient {
	client := &contract.MockGitClient{}
	client.On("GetRepoHash", mock.Anything, ".").Return("abc123", nil)
	client.On("GetActivityLog", mock.Anything, ".").Return(sampleActivityLog, nil)
	return client
}

func TestComputeResultsPreservesOrder(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"churn", "authors", "churn"})
	require.NoError(t, err)

	analyzer := NewAnalyzer(cfg, newAnalyzerClient(), nil)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)

	// Duplicates run once per occurrence, request order preserved
	require.Equal(t, 3, result.Len())
	subs := result.SubResults()
	assert.Contains(t, subs[0].String(), "Churn per author")
	assert.Contains(t, subs[1].String(), "Commits per author")
	assert.Contains(t, subs[2].String(), "Churn per author")
}

func TestComputeResultsSkipsUnknownPlugins(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors", "nope"})
	require.NoError(t, err)

	analyzer := NewAnalyzer(cfg, newAnalyzerClient(), nil)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
}

func TestComputeResultsSkipsFailingPlugins(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)

	client := &contract.MockGitClient{}
	client.On("GetRepoHash", mock.Anything, ".").Return("abc123", nil)
	client.On("GetActivityLog", mock.Anything, ".").Return(nil, assert.AnError)

	analyzer := NewAnalyzer(cfg, client, nil)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.Empty(t, result.String())
}

func TestComputeResultsCacheHit(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)

	cached, err := json.Marshal(&schema.TextResult{Text: "cached text", Div: "<div>cached</div>"})
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", "abc123:authors").Return(cached, resultCacheVersion, int64(100), nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(store)
	mgr.On("GetHistoryStore").Return(nil)

	client := &contract.MockGitClient{}
	client.On("GetRepoHash", mock.Anything, ".").Return("abc123", nil)
	// No GetActivityLog expectation: a cache hit must not run the plugin

	analyzer := NewAnalyzer(cfg, client, mgr)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "cached text", result.String())
	assert.Equal(t, "<div>cached</div>", result.HTML())
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestComputeResultsCacheMissStoresResult(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", "abc123:authors").Return([]byte(nil), 0, int64(0), sql.ErrNoRows)
	store.On("Set", "abc123:authors", mock.Anything, resultCacheVersion, mock.Anything).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(store)
	mgr.On("GetHistoryStore").Return(nil)

	analyzer := NewAnalyzer(cfg, newAnalyzerClient(), mgr)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	store.AssertExpectations(t)
}

func TestComputeResultsStaleCacheVersionIgnored(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)

	cached, err := json.Marshal(&schema.TextResult{Text: "stale", Div: "stale"})
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", "abc123:authors").Return(cached, resultCacheVersion+1, int64(100), nil)
	store.On("Set", "abc123:authors", mock.Anything, resultCacheVersion, mock.Anything).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(store)
	mgr.On("GetHistoryStore").Return(nil)

	analyzer := NewAnalyzer(cfg, newAnalyzerClient(), mgr)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Contains(t, result.String(), "Commits per author")
}

func TestComputeResultsCachingDisabledWithoutRepoHash(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors"})
	require.NoError(t, err)

	client := &contract.MockGitClient{}
	client.On("GetRepoHash", mock.Anything, ".").Return("", assert.AnError)
	client.On("GetActivityLog", mock.Anything, ".").Return(sampleActivityLog, nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(nil)
	// No GetResultStore expectation: caching is skipped without a hash

	analyzer := NewAnalyzer(cfg, client, mgr)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
}

func TestComputeResultsRecordsHistory(t *testing.T) {
	cfg, err := schema.NewConfiguration(".", []string{"authors", "nope"})
	require.NoError(t, err)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, map[string]any{
		"path":    ".",
		"plugins": "authors,nope",
	}).Return(int64(42), nil)
	// Only one plugin produced a result
	history.On("EndRun", int64(42), mock.Anything, 1).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetResultStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	analyzer := NewAnalyzer(cfg, newAnalyzerClient(), mgr)
	result, err := analyzer.ComputeResults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	history.AssertExpectations(t)
}
