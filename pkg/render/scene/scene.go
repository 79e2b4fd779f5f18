package scene

// Element is one positioned, colored shape or text decoration in a visual
// description. The set of element kinds is closed; sinks switch over the
// concrete types.
type Element interface {
	element()
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
	Fill       string
	Stroke     string
	Rx         float64 // corner radius, 0 for sharp corners
}

// Circle is a filled circle, used for tree and graph nodes.
type Circle struct {
	CX, CY, R float64
	Fill      string
	Stroke    string
}

// Line is a straight connector without a head.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
	Dashed         bool
}

// Arrow is a directed connector terminating in an arrowhead.
type Arrow struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	Width          float64
}

// Text is a textual decoration (value, index label, marker, edge weight).
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Fill    string
	Anchor  string // "start", "middle", or "end"; empty means "start"
	Bold    bool
}

func (Rect) element()   {}
func (Circle) element() {}
func (Line) element()   {}
func (Arrow) element()  {}
func (Text) element()   {}

// Group is the visual description of one structure snapshot: a named,
// self-sized collection of elements. OX/OY position the group within the
// composed scene; element coordinates are group-local.
type Group struct {
	Kind   string // structure category ("array", "tree", ..., "placeholder")
	Name   string // structure name from the snapshot, if any
	OX, OY float64
	Width  float64
	Height float64
	Elems  []Element
}

// Add appends elements to the group.
func (g *Group) Add(elems ...Element) {
	g.Elems = append(g.Elems, elems...)
}

// Scene is the complete visual description of one frame: the structure groups
// in their fixed category order plus the frame description, sized to enclose
// every group.
type Scene struct {
	Description string
	Width       float64
	Height      float64
	Groups      []*Group
}
