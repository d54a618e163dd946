package layout

// State is the layout cursor: a page number and a vertical position on it.
type State struct {
	Page int
	Y    float64
}

// Before reports whether s lies above o in reading order.
func (s State) Before(o State) bool {
	return s.Page < o.Page || (s.Page == o.Page && s.Y < o.Y)
}

func lower(a, b State) State {
	if a.Before(b) {
		return b
	}
	return a
}

// Flow decides page breaks. It never draws content itself; it only advances
// pages and redraws the header on pages it creates.
type Flow struct {
	canvas Canvas
	geom   Geometry
	header Header
}

func NewFlow(c Canvas, g Geometry, h Header) *Flow {
	return &Flow{canvas: c, geom: g, header: h}
}

// Start opens the first page and returns the cursor at the top of content.
func (f *Flow) Start() State {
	f.canvas.AddPage()
	f.header.Draw(f.canvas, f.geom)
	return State{Page: f.canvas.Page(), Y: f.geom.ContentTop()}
}

// EnsureSpace moves st to the top of the next page when needed more units
// would cross the printable bottom. A page that already exists is reused,
// otherwise a new page is added and its header drawn. It reports whether a
// break happened.
func (f *Flow) EnsureSpace(st *State, needed float64) bool {
	if st.Y+needed <= f.geom.PrintableBottom() {
		return false
	}

	if st.Page < f.canvas.PageCount() {
		st.Page++
		f.canvas.SetPage(st.Page)
	} else {
		f.canvas.AddPage()
		st.Page = f.canvas.Page()
		f.header.Draw(f.canvas, f.geom)
	}
	st.Y = f.geom.ContentTop()
	return true
}
