package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePreset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestINIPresetStore_Load(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "high_iv.ini", `# high implied volatility calls
[FILTER]
min-IV = 0.5
max-iv =
calls = true
tickers = AAPL, MSFT
order-by = iv_desc ; not a comment
limit = 20
`)

	s := NewINIPresetStore(dir)
	p, err := s.Load(context.Background(), "high_iv")
	require.NoError(t, err)

	assert.Equal(t, "high_iv", p.Name)
	assert.Equal(t, []models.PresetField{
		{Key: "min-IV", Value: "0.5"},
		{Key: "calls", Value: "true"},
		{Key: "tickers", Value: "AAPL, MSFT"},
		{Key: "order-by", Value: "iv_desc ; not a comment"},
		{Key: "limit", Value: "20"},
	}, p.Fields)
}

func TestINIPresetStore_LoadMissing(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "nofilter.ini", "[OTHER]\nlimit = 5\n")
	s := NewINIPresetStore(dir)

	tests := []string{"absent", "nofilter", "../etc/passwd", ""}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(context.Background(), name)
			assert.ErrorIs(t, err, repository.ErrPresetNotFound)
		})
	}
}

func TestINIPresetStore_List(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "b.ini", "[FILTER]\n")
	writePreset(t, dir, "a.ini", "[FILTER]\n")
	writePreset(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ini"), 0o755))

	names, err := NewINIPresetStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
