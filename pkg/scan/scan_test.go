package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunResultIdenticalAcrossWorkerCounts(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, root, fmt.Sprintf("pkg%d/file%d.go", i%4, i), []byte(fmt.Sprintf("package pkg%d\n", i%4)))
	}
	writeFile(t, root, "blob.bin", []byte{0x00, 0x01, 0x02})

	cfg := Config{Root: root, MaxFileSize: 1 << 20, CaseSensitive: true}

	cfg.Workers = 1
	serial, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	cfg.Workers = 8
	parallel, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)

	// Concurrency never changes the result set, its order, or the stats.
	assert.Equal(t, serial.Entries, parallel.Entries)
	assert.Equal(t, serial.Stats, parallel.Stats)
	assert.Equal(t, 21, serial.Stats.Total())
}

func TestRunTextAndBinaryScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", []byte("print('hi')\n"))
	writeFile(t, root, "b.bin", []byte("data\x00data"))

	result, err := Run(context.Background(), Config{Root: root, CaseSensitive: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	py := result.Entries[0]
	assert.Equal(t, "a.py", py.RelPath)
	assert.Equal(t, StatusIncluded, py.Status)
	assert.Equal(t, "python", py.Language)
	assert.Equal(t, "print('hi')\n", py.Content)

	bin := result.Entries[1]
	assert.Equal(t, "b.bin", bin.RelPath)
	assert.Equal(t, StatusBinary, bin.Status)
	assert.Empty(t, bin.Content)

	assert.Equal(t, 1, result.Stats.Included)
	assert.Equal(t, 1, result.Stats.Binary)
	assert.Equal(t, 1, result.Stats.TotalLines)
}

func TestRunBinaryDetectionIgnoresExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fake.txt", append([]byte("looks like text"), 0x00))

	result, err := Run(context.Background(), Config{Root: root, CaseSensitive: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, StatusBinary, result.Entries[0].Status)
}

func TestRunOversizedFileSkippedWhole(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.sql", make([]byte, 2048))
	writeFile(t, root, "small.sql", []byte("select 1;\n"))

	result, err := Run(context.Background(), Config{Root: root, MaxFileSize: 1024, CaseSensitive: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, StatusTooLarge, result.Entries[0].Status)
	assert.Empty(t, result.Entries[0].Content, "partial content is never captured")
	assert.Equal(t, StatusIncluded, result.Entries[1].Status)
}

func TestRunReadErrorRecordedNotFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	writeFile(t, root, "open.txt", []byte("fine\n"))
	locked := filepath.Join(root, "locked.txt")
	require.NoError(t, os.WriteFile(locked, []byte("secret"), 0000))

	result, err := Run(context.Background(), Config{Root: root, CaseSensitive: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, StatusReadError, result.Entries[0].Status)
	assert.NotEmpty(t, result.Entries[0].Cause)
	assert.Equal(t, StatusIncluded, result.Entries[1].Status)
	assert.Equal(t, 1, result.Stats.ReadErrors)
}

func TestRunStatsOnlyScenario(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 8; i++ {
		writeFile(t, root, fmt.Sprintf("f%d.py", i), []byte("pass\n"))
	}
	writeFile(t, root, "x.bin", []byte{0x00})
	writeFile(t, root, "y.bin", []byte{0x00, 0xff})

	result, err := Run(context.Background(), Config{Root: root, CaseSensitive: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Stats.Included)
	assert.Equal(t, 2, result.Stats.Binary)
	assert.Equal(t, LanguageStat{Files: 8, Lines: 8}, result.Stats.Languages["python"])
}

func TestRunEmptyRoot(t *testing.T) {
	result, err := Run(context.Background(), Config{Root: t.TempDir(), CaseSensitive: true}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.Stats.Total())
	assert.NotEmpty(t, result.RunID)
}

func TestRunCancellation(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, root, fmt.Sprintf("f%d.txt", i), []byte("content\n"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, Config{Root: root, Workers: 2, CaseSensitive: true}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)

	// Whatever completed before the workers observed cancellation is
	// reported; nothing is left half-processed.
	for _, entry := range result.Entries {
		assert.NotEqual(t, StatusPending, entry.Status)
	}
	assert.Equal(t, len(result.Entries), result.Stats.Total())
}

func TestRunEmptyFileIncluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.py", nil)

	result, err := Run(context.Background(), Config{Root: root, CaseSensitive: true}, nil)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	assert.Equal(t, StatusIncluded, result.Entries[0].Status)
	assert.Empty(t, result.Entries[0].Content)
	assert.Equal(t, 0, result.Stats.TotalLines)
}
