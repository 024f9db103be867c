package pipeline

import (
	"github.com/matzehuels/skyline/pkg/canvas"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/scene"
	"github.com/matzehuels/skyline/pkg/sink"
)

// Render converts a drawn scene into every requested format.
func Render(cv *canvas.Canvas, stats scene.Stats, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(cv, stats, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(cv *canvas.Canvas, stats scene.Stats, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return sink.RenderText(cv), nil
	case FormatJSON:
		data, err := sink.RenderJSON(cv, sink.WithJSONSeed(opts.Config.SeedValue()), sink.WithJSONStats(stats))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
		}
		return data, nil
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.FontSize > 0 {
			svgOpts = append(svgOpts, sink.WithFontSize(opts.FontSize))
		}
		return sink.RenderSVG(cv, svgOpts...), nil
	case FormatPNG:
		var pngOpts []sink.PNGOption
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
		}
		return sink.RenderPNG(cv, pngOpts...)
	default:
		return nil, ValidateFormat(format)
	}
}
