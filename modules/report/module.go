// Package report provides the aspects the CLI mounts: each one reports the
// options assembled for every element it is applied to.
package report

import (
	"context"
	"io"

	"github.com/goccy/go-json"
	"github.com/maxsalles/mx/internal/aspect"
	"github.com/maxsalles/mx/internal/config"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/registry"
	"github.com/maxsalles/mx/internal/value"
)

// Line is one report entry: the options of one aspect on one element.
type Line struct {
	File    string      `json:"file"`
	Element string      `json:"element"`
	Aspect  string      `json:"aspect"`
	Options value.Value `json:"options"`
}

// Encoder writes report lines.
type Encoder interface {
	Encode(line Line) error
}

type jsonEncoder struct {
	enc *json.Encoder
}

// NewJSONEncoder writes one JSON object per line to w.
func NewJSONEncoder(w io.Writer) Encoder {
	return jsonEncoder{enc: json.NewEncoder(w)}
}

func (e jsonEncoder) Encode(line Line) error {
	return e.enc.Encode(line)
}

// Module implements the registry.Module interface for this package. It
// registers one reporting aspect per configured aspect.
type Module struct {
	File          string
	Encoder       Encoder
	Aspects       []*config.Aspect
	DefaultOption string

	reported int
}

// Reported returns the number of lines written so far.
func (m *Module) Reported() int {
	return m.reported
}

// Register registers the reporting aspects with the registry.
func (m *Module) Register(r *registry.Registry) error {
	for _, a := range m.Aspects {
		defaultOption := a.DefaultOption
		if defaultOption == "" {
			defaultOption = m.DefaultOption
		}

		err := r.Register(&aspect.Descriptor{
			Name:          a.Name,
			DefaultOption: defaultOption,
			BasePath:      a.BasePath,
			Resources:     a.Resources,
			Behavior:      &reporter{module: m, name: a.Name},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// reporter is the behavior of a reporting aspect.
type reporter struct {
	module *Module
	name   string
}

// Effect writes the options of el. There is nothing to undo.
func (r *reporter) Effect(ctx context.Context, el markup.Element, opts value.Value) (aspect.UndoFunc, error) {
	ctxlog.FromContext(ctx).Debug("Reporting options.", "aspect", r.name, "element", el.Path())

	err := r.module.Encoder.Encode(Line{
		File:    r.module.File,
		Element: el.Path(),
		Aspect:  r.name,
		Options: opts,
	})
	if err != nil {
		return nil, err
	}
	r.module.reported++
	return nil, nil
}
