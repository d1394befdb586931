//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"extract", "batch", "boundaries", "tables", "section"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "kserc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestExtractCommand_Flags(t *testing.T) {
	require.NotNil(t, extractCmd.Flags().Lookup("format"))
	out := extractCmd.Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "batch command should have --limit flag")
	assert.Equal(t, "0", flag.DefValue)

	outDir := batchCmd.Flags().Lookup("out-dir")
	require.NotNil(t, outDir)
	assert.Equal(t, "reports", outDir.DefValue)
}

func TestSectionCommand_Args(t *testing.T) {
	assert.Error(t, sectionCmd.Args(sectionCmd, []string{"petition.pdf"}))
	assert.NoError(t, sectionCmd.Args(sectionCmd, []string{"petition.pdf", "3.4"}))
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, "yaml", outputFormat("yaml"))
	if cfg == nil {
		assert.Equal(t, "json", outputFormat(""))
	}
}
