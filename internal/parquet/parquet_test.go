package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/visulog/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	pqSchema := parquet.SchemaOf(new(Run))
	require.NotNil(t, pqSchema)

	expectedColumns := []string{
		"run_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"plugin_count",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := pqSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "runs.parquet")

	data := MockFetchRuns()
	require.NotEmpty(t, data, "Mock data should not be empty")

	err := WriteRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[Run](file)
	defer reader.Close()

	readData := make([]Run, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].RunID, readData[i].RunID, "RunID should match")
		assert.Equal(t, data[i].PluginCount, readData[i].PluginCount, "PluginCount should match")
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond, "StartTime should match within nanosecond precision")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].RunDurationMs == nil {
			assert.Nil(t, readData[i].RunDurationMs, "RunDurationMs should be nil")
		} else {
			require.NotNil(t, readData[i].RunDurationMs, "RunDurationMs should not be nil")
			assert.Equal(t, *data[i].RunDurationMs, *readData[i].RunDurationMs, "RunDurationMs should match")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_runs.parquet")

	err := WriteRunsParquet([]Run{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	data := MockFetchRuns()
	err := WriteRunsParquet(data, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestConvertRunRecords(t *testing.T) {
	now := time.Now()
	endTime := now.Add(time.Minute)
	durationMs := int64(60000)
	config := `{"path":"."}`

	records := []schema.RunRecord{
		{
			RunID:        7,
			StartTime:    now,
			EndTime:      &endTime,
			DurationMs:   &durationMs,
			PluginCount:  3,
			ConfigParams: &config,
		},
		{
			RunID:     8,
			StartTime: now,
		},
	}

	converted := ConvertRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(7), converted[0].RunID)
	assert.Equal(t, int32(3), converted[0].PluginCount)
	require.NotNil(t, converted[0].RunDurationMs)
	assert.Equal(t, durationMs, *converted[0].RunDurationMs)
	require.NotNil(t, converted[0].ConfigParams)
	assert.Equal(t, config, *converted[0].ConfigParams)

	assert.Equal(t, int64(8), converted[1].RunID)
	assert.Nil(t, converted[1].EndTime)
	assert.Nil(t, converted[1].RunDurationMs)
	assert.Nil(t, converted[1].ConfigParams)
}
