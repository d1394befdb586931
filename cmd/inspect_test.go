//go:build !integration

package main

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhavanxk/kserc-analysis-tool/internal/boundary"
	"github.com/madhavanxk/kserc-analysis-tool/internal/config"
	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
	"github.com/madhavanxk/kserc-analysis-tool/internal/model"
	"github.com/madhavanxk/kserc-analysis-tool/internal/narrative"
)

func TestOpenAndRun_Boundaries(t *testing.T) {
	path := writeDump(t, t.TempDir(), "petition.json", petitionPages())

	var got model.Boundaries
	err := openAndRun(context.Background(), path, config.DecodeConfig{}, func(s *document.Session) error {
		got = boundary.ForSession(s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.PageRange{Start: 1, End: 2}, got[model.SectionGeneration])
	assert.Equal(t, model.PageRange{Start: 3, End: 3}, got[model.SectionTransmission])
}

func TestOpenAndRun_Section(t *testing.T) {
	path := writeDump(t, t.TempDir(), "petition.json", petitionPages())

	err := openAndRun(context.Background(), path, config.DecodeConfig{}, func(s *document.Session) error {
		title, text := narrative.SectionText(s, "3.4", 0)
		assert.Equal(t, "Return on Equity", title)
		assert.Contains(t, text, "variance of 2 Cr")
		assert.NotContains(t, text, "Straight line")
		return nil
	})
	require.NoError(t, err)
}

func TestOpenAndRun_MissingFile(t *testing.T) {
	err := openAndRun(context.Background(), "does-not-exist.json", config.DecodeConfig{}, func(*document.Session) error {
		t.Fatal("callback should not run")
		return nil
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, document.ErrDocumentOpen))
}
