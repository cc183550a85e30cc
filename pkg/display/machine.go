package display

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/ui"
)

// RenderMachine serializes a view in the requested machine format. The
// output ends with a newline so it can be written as-is.
func RenderMachine(format ui.Format, v interface{}) (string, error) {
	switch format {
	case ui.FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "encoding output as JSON")
		}
		return string(data) + "\n", nil
	case ui.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "encoding output as YAML")
		}
		return string(data), nil
	default:
		return "", errors.Newf(errors.ErrInternal, "%s is not a machine format", format)
	}
}

// ForFormat picks the renderer for a resolved output format. Machine
// formats have no Renderer; callers go through RenderMachine instead.
func ForFormat(format ui.Format) Renderer {
	if format == ui.FormatTerminal {
		return NewRichRenderer()
	}
	return NewPlainRenderer()
}
