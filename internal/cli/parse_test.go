package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"xray/config"
	"xray/internal/adapter/codec"
)

func TestParseTarget(t *testing.T) {
	rootDir = "/work"
	t.Cleanup(func() {
		rootDir, parseOutput, parseFormat = "", "", ""
	})

	tests := []struct {
		name       string
		output     string
		format     string
		wantFormat codec.Format
		wantOutput string
	}{
		{"defaults", "", "", codec.FormatTOML, filepath.Join("/work", "zoo.toml")},
		{"extension", "out/zoo.yml", "", codec.FormatYAML, "out/zoo.yml"},
		{"flag wins", "out/zoo.txt", "yaml", codec.FormatYAML, "out/zoo.txt"},
		{"stdout", "-", "", codec.FormatTOML, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseOutput, parseFormat = tt.output, tt.format
			format, output, err := parseTarget(config.DefaultConfig(), "/src/zoo")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantOutput, output)
		})
	}

	parseOutput, parseFormat = "zoo.json", ""
	_, _, err := parseTarget(config.DefaultConfig(), "/src/zoo")
	assert.True(t, errors.Is(err, codec.ErrUnknownFormat))
}

func TestCheckOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoo.toml")
	data := []byte("[root]\nname = \"zoo\"\n")

	err := checkOutput(path, data)
	assert.True(t, errors.Is(err, ErrStale))

	require.NoError(t, os.WriteFile(path, data, 0644))
	assert.NoError(t, checkOutput(path, data))
}
