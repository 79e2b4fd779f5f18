package sink

import (
	"encoding/json"

	"github.com/algoviz/algoviz/pkg/render/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	frameID *int
	module  string
}

// WithJSONFrameID records the source frame identifier in the output, enabling
// clients to correlate documents with playback position.
func WithJSONFrameID(id int) JSONOption {
	return func(r *jsonRenderer) { r.frameID = &id }
}

// WithJSONModule records the algorithm module tag the scene was dispatched
// under.
func WithJSONModule(module string) JSONOption {
	return func(r *jsonRenderer) { r.module = module }
}

type jsonOutput struct {
	FrameID     *int        `json:"frame_id,omitempty"`
	Module      string      `json:"module,omitempty"`
	Description string      `json:"description,omitempty"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Groups      []jsonGroup `json:"groups"`
}

type jsonGroup struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name,omitempty"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Elements []jsonElement `json:"elements"`
}

// jsonElement is the flattened union of all element kinds, discriminated by
// Type. Only the fields for the element's kind are populated; the rest are
// omitted. This flat shape is the data interchange contract for frontend
// renderers.
type jsonElement struct {
	Type string `json:"type"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Rx     float64 `json:"rx,omitempty"`

	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`

	Content string  `json:"content,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Anchor  string  `json:"anchor,omitempty"`
	Bold    bool    `json:"bold,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document: the
// structure groups with their offsets and every element in a typed, flat
// representation. Colors are revalidated at this boundary the same way the
// SVG sink does it.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify sc and is safe to call concurrently.
func RenderJSON(sc *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		FrameID:     r.frameID,
		Module:      r.module,
		Description: sc.Description,
		Width:       safeDim(sc.Width),
		Height:      safeDim(sc.Height),
		Groups:      make([]jsonGroup, 0, len(sc.Groups)),
	}

	for _, g := range sc.Groups {
		jg := jsonGroup{
			Kind:     g.Kind,
			Name:     g.Name,
			X:        safeNum(g.OX),
			Y:        safeNum(g.OY),
			Width:    safeDim(g.Width),
			Height:   safeDim(g.Height),
			Elements: make([]jsonElement, 0, len(g.Elems)),
		}
		for _, e := range g.Elems {
			jg.Elements = append(jg.Elements, buildJSONElement(e))
		}
		out.Groups = append(out.Groups, jg)
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONElement(e scene.Element) jsonElement {
	switch el := e.(type) {
	case scene.Rect:
		return jsonElement{
			Type: "rect",
			X:    safeNum(el.X), Y: safeNum(el.Y),
			Width: safeDim(el.W), Height: safeDim(el.H), Rx: safeDim(el.Rx),
			Fill:   attrColor(el.Fill),
			Stroke: jsonStroke(el.Stroke),
		}
	case scene.Circle:
		return jsonElement{
			Type: "circle",
			CX:   safeNum(el.CX), CY: safeNum(el.CY), R: safeDim(el.R),
			Fill:   attrColor(el.Fill),
			Stroke: jsonStroke(el.Stroke),
		}
	case scene.Line:
		return jsonElement{
			Type: "line",
			X1:   safeNum(el.X1), Y1: safeNum(el.Y1),
			X2: safeNum(el.X2), Y2: safeNum(el.Y2),
			Stroke: jsonStroke(el.Stroke), StrokeWidth: lineWidth(el.Width),
			Dashed: el.Dashed,
		}
	case scene.Arrow:
		return jsonElement{
			Type: "arrow",
			X1:   safeNum(el.X1), Y1: safeNum(el.Y1),
			X2: safeNum(el.X2), Y2: safeNum(el.Y2),
			Stroke: jsonStroke(el.Stroke), StrokeWidth: lineWidth(el.Width),
		}
	case scene.Text:
		return jsonElement{
			Type:    "text",
			X:       safeNum(el.X), Y: safeNum(el.Y),
			Content: el.Content, Size: safeDim(el.Size),
			Fill: attrColor(el.Fill), Anchor: el.Anchor, Bold: el.Bold,
		}
	default:
		return jsonElement{Type: "unknown"}
	}
}

func jsonStroke(s string) string {
	if s == "" {
		return ""
	}
	return attrColor(s)
}
