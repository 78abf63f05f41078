package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sitecheck/sitecheck/internal/adapters/outbound/history"
	"github.com/sitecheck/sitecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		Timestamp: "2026-10-01T10:00:00Z",
		Commit:    "abc1234",
		Files:     42,
		Errors:    3,
		Warnings:  7,
	}

	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
	assert.FileExists(t, filepath.Join(dir, ".sitecheck", "history", "runs.json"))
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t1", Errors: 5}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t2", Errors: 2}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "t3", Passed: true}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 5, entries[0].Errors)
	assert.True(t, entries[2].Passed)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".sitecheck", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

func TestHistory_TrimsToLimit(t *testing.T) {
	dir := t.TempDir()
	h := history.New().WithLimit(3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: fmt.Sprintf("t%d", i), Errors: i}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "t3", entries[0].Timestamp)
	assert.Equal(t, "t5", entries[2].Timestamp)
}

func TestHistory_NoLimitKeepsEverything(t *testing.T) {
	dir := t.TempDir()
	h := history.New().WithLimit(0)

	for i := 0; i < 4; i++ {
		require.NoError(t, h.Save(dir, domain.RunEntry{Errors: i}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestHistory_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, history.New().Save(dir, domain.RunEntry{Timestamp: "t1"}))

	files, err := os.ReadDir(filepath.Join(dir, ".sitecheck", "history"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "runs.json", files[0].Name())
}

func TestHistory_SaveRefusesCorruptLog(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".sitecheck", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("[{"), 0644))

	err := history.New().Save(dir, domain.RunEntry{Timestamp: "t1"})
	require.Error(t, err)

	data, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, "[{", string(data))
}
