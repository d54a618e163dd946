package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFDocument is the gofpdf-backed output document. It measures text for a
// Recorder during composition and renders the recorded pages afterwards.
type PDFDocument struct {
	pdf  *gofpdf.Fpdf
	geom Geometry
}

var (
	_ Measurer      = &PDFDocument{}
	_ FontRegistry  = &PDFDocument{}
	_ ImageRegistry = &PDFDocument{}
)

func NewPDFDocument(g Geometry) *PDFDocument {
	pdf := gofpdf.New("P", "mm", g.PageFormat, "")
	pdf.SetMargins(g.Margin, g.Margin, g.Margin)
	pdf.SetAutoPageBreak(false, g.Margin)
	pdf.SetCreator("MyLing", true)

	return &PDFDocument{pdf: pdf, geom: g}
}

// SetTitle sets the document metadata title.
func (d *PDFDocument) SetTitle(title string) {
	d.pdf.SetTitle(title, true)
}

func (d *PDFDocument) StringWidth(face Face, s string) float64 {
	d.pdf.SetFont(face.Family, face.Style, face.Size)
	return d.pdf.GetStringWidth(s)
}

// RegisterFont embeds a UTF-8 TrueType font as both the regular and the bold
// style of family.
func (d *PDFDocument) RegisterFont(family string, data []byte) error {
	d.pdf.AddUTF8FontFromBytes(family, "", data)
	d.pdf.AddUTF8FontFromBytes(family, "B", data)
	return d.takeError()
}

func (d *PDFDocument) RegisterImage(name string, data []byte) (float64, float64, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("decode image: empty %s image", format)
	}

	d.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
	if err := d.takeError(); err != nil {
		return 0, 0, err
	}

	return float64(cfg.Width), float64(cfg.Height), nil
}

// Render replays recorded pages into the document.
func (d *PDFDocument) Render(r *Recorder) error {
	for _, page := range r.Pages() {
		d.pdf.AddPage()
		for _, op := range page {
			switch op.Kind {
			case OpText:
				d.pdf.SetFont(op.Face.Family, op.Face.Style, op.Face.Size)
				d.pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
				d.pdf.Text(op.X, op.Y, op.Text)
			case OpLine:
				d.pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
				d.pdf.SetLineWidth(op.W)
				d.pdf.Line(op.X, op.Y, op.X2, op.Y2)
			case OpImage:
				d.pdf.ImageOptions(op.Text, op.X, op.Y, op.W, op.H, false, gofpdf.ImageOptions{}, 0, "")
			}
		}
		if d.pdf.Err() {
			return d.pdf.Error()
		}
	}
	return d.pdf.Error()
}

// Output writes the finished PDF.
func (d *PDFDocument) Output(w io.Writer) error {
	return d.pdf.Output(w)
}

// takeError returns and clears a pending gofpdf error so a failed asset does
// not poison the rest of the document.
func (d *PDFDocument) takeError() error {
	if !d.pdf.Err() {
		return nil
	}
	err := d.pdf.Error()
	d.pdf.ClearError()
	return err
}
