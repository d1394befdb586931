package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/madhavanxk/kserc-analysis-tool/internal/config"
	"github.com/madhavanxk/kserc-analysis-tool/internal/document"
)

// openDocument opens path with the decode settings from cfg.
func openDocument(ctx context.Context, path string, c config.DecodeConfig) (*document.Session, error) {
	return document.Open(ctx, path, document.Options{
		Validate:      c.Validate,
		PdfToTextPath: c.PdfToTextPath,
		TextFallback:  c.TextFallback,
	})
}

// outputFormat prefers the flag value over the configured one.
func outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil {
		return cfg.Output.Format
	}
	return "json"
}

// render writes v as indented JSON or as YAML. YAML goes through the JSON
// encoding so that ordered report sections keep their order.
func render(w io.Writer, v any, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "render: marshal json")
	}

	switch format {
	case "json":
		data = append(data, '\n')
		_, err = w.Write(data)
		return eris.Wrap(err, "render: write")
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return eris.Wrap(err, "render: convert to yaml")
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return eris.Wrap(err, "render: write yaml")
		}
		return eris.Wrap(enc.Close(), "render: close yaml")
	default:
		return eris.Errorf("render: unsupported format %q", format)
	}
}

// blockStyle drops the flow and quoting styles carried over from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
