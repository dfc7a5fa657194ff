// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-writer/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.ArchiveConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := types.Run{
		Topic:      "renewable energy",
		Model:      "claude-3-5-sonnet-latest",
		OutputPath: "research_paper.txt",
		Started:    started,
		Finished:   started.Add(5 * time.Minute),
	}
	sections := []types.RunSection{
		{Position: 0, Name: "Introduction", Chars: 1200},
		{Position: 1, Name: "Conclusion", Chars: 900},
	}

	id, err := s.Record(ctx, run, sections)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "renewable energy", runs[0].Topic)
	assert.Equal(t, "research_paper.txt", runs[0].OutputPath)
	assert.True(t, runs[0].Started.Equal(run.Started))
	assert.True(t, runs[0].Finished.Equal(run.Finished))

	got, err := s.Sections(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Introduction", got[0].Name)
	assert.Equal(t, 1200, got[0].Chars)
	assert.Equal(t, "Conclusion", got[1].Name)
}

func TestListMostRecentFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, topic := range []string{"first", "second", "third"} {
		_, err := s.Record(ctx, types.Run{
			Topic:      topic,
			OutputPath: topic + ".txt",
			Started:    time.Now(),
			Finished:   time.Now(),
		}, nil)
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].Topic)
	assert.Equal(t, "second", runs[1].Topic)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No archived runs.")

	buf.Reset()
	FormatTable([]types.Run{{
		ID:         7,
		Topic:      "renewable energy",
		Model:      "claude-3-5-sonnet-latest",
		OutputPath: "out.txt",
		Finished:   time.Now(),
	}}, &buf)
	assert.Contains(t, buf.String(), "renewable energy")
	assert.Contains(t, buf.String(), "out.txt")
	assert.Contains(t, buf.String(), "1 runs")
}
