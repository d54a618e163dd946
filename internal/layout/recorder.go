package layout

// OpKind identifies a recorded drawing instruction.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpImage
)

// Op is a single recorded drawing instruction. Text ops carry their face and
// color so pages can be replayed in any order.
type Op struct {
	Kind  OpKind
	X, Y  float64
	X2    float64
	Y2    float64
	W, H  float64
	Face  Face
	Color Color
	// Text is the string for OpText and the image name for OpImage.
	Text string
}

// Recorder is a Canvas that keeps drawing instructions per page instead of
// rendering them. Composition finishes before anything is rendered, so the
// total page count is known when footers are stamped.
type Recorder struct {
	measurer Measurer
	pages    [][]Op
	page     int
}

var _ Canvas = &Recorder{}

func NewRecorder(m Measurer) *Recorder {
	return &Recorder{measurer: m}
}

func (r *Recorder) StringWidth(face Face, s string) float64 {
	return r.measurer.StringWidth(face, s)
}

func (r *Recorder) AddPage() {
	r.pages = append(r.pages, nil)
	r.page = len(r.pages)
}

// SetPage moves drawing to an existing page. Out of range values are ignored.
func (r *Recorder) SetPage(n int) {
	if n >= 1 && n <= len(r.pages) {
		r.page = n
	}
}

func (r *Recorder) Page() int {
	return r.page
}

func (r *Recorder) PageCount() int {
	return len(r.pages)
}

func (r *Recorder) Text(x, y float64, face Face, color Color, s string) {
	r.emit(Op{Kind: OpText, X: x, Y: y, Face: face, Color: color, Text: s})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, color Color) {
	r.emit(Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, W: width, Color: color})
}

func (r *Recorder) Image(name string, x, y, w, h float64) {
	r.emit(Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Text: name})
}

// Pages returns the recorded instructions, one slice per page.
func (r *Recorder) Pages() [][]Op {
	return r.pages
}

func (r *Recorder) emit(op Op) {
	if r.page == 0 {
		r.AddPage()
	}
	r.pages[r.page-1] = append(r.pages[r.page-1], op)
}
