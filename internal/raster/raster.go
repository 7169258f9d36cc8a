// Package raster turns laid out timesheet pages into bitmaps.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/timesheet/internal/document"
)

// DefaultScale is the pixel density multiplier applied to the base page.
const DefaultScale = 2.5

// Base page size in pixels, A4 at 96 dpi.
const (
	PageWidth  = 794
	PageHeight = 1123
)

const (
	margin     = 45
	rowHeight  = 18
	dayColumn  = 110
	lineHeight = 14
)

var (
	ink    = color.Black
	paper  = color.White
	shade  = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	total  = color.NRGBA{R: 0xbb, G: 0xf7, B: 0xd0, A: 0xff}
	accent = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	brand  = color.NRGBA{R: 0x2e, G: 0x6b, B: 0xac, A: 0xff}
)

// ErrInvalidScale is returned for a zero or negative scale.
var ErrInvalidScale = errors.New("render scale must be positive")

// Rasterizer renders one page of a document to a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc *document.Document, page document.Page) (image.Image, error)
}

// Canvas draws pages with a fixed bitmap font on a white background and
// scales the result up by Scale.
type Canvas struct {
	Scale float64
}

func NewCanvas(scale float64) *Canvas {
	return &Canvas{Scale: scale}
}

// Size returns the pixel size of a rendered page.
func (c *Canvas) Size() (int, int) {
	return scaled(PageWidth, c.Scale), scaled(PageHeight, c.Scale)
}

func scaled(n int, scale float64) int {
	return int(math.Round(float64(n) * scale))
}

func (c *Canvas) Rasterize(ctx context.Context, doc *document.Document, page document.Page) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Scale <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, c.Scale)
	}
	if doc == nil {
		return nil, errors.New("no document")
	}

	p := &painter{img: imaging.New(PageWidth, PageHeight, paper), y: margin}
	p.header(doc)
	p.staff(page.Staff)
	for _, w := range page.Weeks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.week(w)
	}
	if page.Footer != nil {
		p.footer(page.Footer)
	}

	if c.Scale == 1 {
		return p.img, nil
	}
	w, h := c.Size()
	return imaging.Resize(p.img, w, h, imaging.Lanczos), nil
}

type painter struct {
	img *image.NRGBA
	y   int
}

// basicfont only carries ASCII glyphs
var glyphs = strings.NewReplacer("–", "-", "—", "-", "’", "'")

func (p *painter) text(x, baseline int, s string, c color.Color) {
	s = glyphs.Replace(s)
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, glyphs.Replace(s)).Round()
}

func (p *painter) fill(r image.Rectangle, c color.Color) {
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (p *painter) hline(x0, x1, y int) {
	p.fill(image.Rect(x0, y, x1, y+1), ink)
}

func (p *painter) vline(x, y0, y1 int) {
	p.fill(image.Rect(x, y0, x+1, y1), ink)
}

func (p *painter) box(r image.Rectangle) {
	p.hline(r.Min.X, r.Max.X, r.Min.Y)
	p.hline(r.Min.X, r.Max.X, r.Max.Y-1)
	p.vline(r.Min.X, r.Min.Y, r.Max.Y)
	p.vline(r.Max.X-1, r.Min.Y, r.Max.Y)
}

func (p *painter) header(doc *document.Document) {
	logo := image.Rect(margin, p.y, margin+112, p.y+45)
	if doc.Logo == document.LogoCygnet {
		p.fill(logo, brand)
		p.text(logo.Min.X+35, logo.Min.Y+27, doc.Logo.String(), paper)
	} else {
		p.box(logo)
		p.text(logo.Min.X+42, logo.Min.Y+27, doc.Logo.String(), brand)
	}
	right := PageWidth - margin
	p.text(right-textWidth(doc.Heading), p.y+20, doc.Heading, ink)
	p.y += 60
}

func (p *painter) staff(s document.Staff) {
	right := PageWidth - margin
	if s.Compact {
		p.text(margin, p.y+10, "Name: "+s.NameOrBlank(), ink)
		pos := "Position: " + s.PositionOrBlank()
		p.text(right-textWidth(pos), p.y+10, pos, ink)
		p.y += 16
		p.hline(margin, right, p.y)
		p.y += 12
		return
	}

	p.text(margin, p.y+10, "Name:", ink)
	p.hline(margin+45, margin+245, p.y+12)
	p.text(margin+48, p.y+10, s.Name, ink)
	p.text(margin+280, p.y+10, "Position:", ink)
	p.hline(margin+350, margin+500, p.y+12)
	p.text(margin+353, p.y+10, s.Position, ink)
	p.y += 18
	p.hline(margin, right, p.y)
	p.y += 10

	x := margin
	for _, c := range document.StaffCategories {
		p.box(image.Rect(x, p.y, x+12, p.y+12))
		p.text(x+18, p.y+10, c, ink)
		x += 18 + textWidth(c) + 24
	}
	p.y += 24
}

func columnX(i int) int {
	if i == 0 {
		return margin
	}
	width := (PageWidth - 2*margin - dayColumn) / (len(document.Columns) - 1)
	return margin + dayColumn + (i-1)*width
}

func (p *painter) week(w document.WeekTable) {
	right := PageWidth - margin
	n := len(document.Columns)

	p.text(margin, p.y+10, w.Title, ink)
	p.y += 16

	// header row, words stacked so narrow columns stay readable
	top := p.y
	head := 2 * lineHeight
	for i, col := range document.Columns {
		x0, x1 := columnX(i), right
		if i+1 < n {
			x1 = columnX(i + 1)
		}
		if i == document.ShadedColumn {
			p.fill(image.Rect(x0, top, x1, top+head+4), shade)
		}
		for j, word := range strings.Fields(col) {
			p.text(x0+4, top+12+j*lineHeight, word, ink)
		}
	}
	p.y += head + 4

	for _, label := range w.Rows() {
		shaded := image.Rect(columnX(document.ShadedColumn), p.y, columnX(document.ShadedColumn+1), p.y+rowHeight)
		p.fill(shaded, shade)
		p.text(margin+4, p.y+13, label, ink)
		p.hline(margin, right, p.y)
		p.y += rowHeight
	}

	p.fill(image.Rect(margin, p.y, right, p.y+rowHeight), total)
	p.hline(margin, right, p.y)
	p.text(margin+4, p.y+13, "TOTAL HOURS:", ink)
	p.y += rowHeight

	p.box(image.Rect(margin, top, right, p.y+1))
	for i := 1; i < n; i++ {
		p.vline(columnX(i), top, p.y-rowHeight)
	}
	p.vline(columnX(1), p.y-rowHeight, p.y)

	p.y += 14
	p.text(margin, p.y, "Authorised by:", ink)
	p.hline(margin+105, margin+265, p.y+2)
	p.text(right-200, p.y, "Date:", ink)
	p.hline(right-160, right, p.y+2)
	p.y += 16
}

func (p *painter) footer(f *document.Footer) {
	right := PageWidth - margin
	cols := (right - margin) / 7

	y := PageHeight - margin - 3*lineHeight - 20
	lines := append(wrap(f.Notice, cols), wrap(f.Property, cols)...)
	y -= len(lines) * lineHeight
	if y < p.y {
		y = p.y
	}

	p.fill(image.Rect(margin, y, right, y+2), ink)
	y += 16
	notice := wrap(f.Notice, cols)
	start, end, _ := find(f.Notice, f.Deadline)
	for _, parts := range highlight(notice, start, end) {
		x := margin
		for _, part := range parts {
			c := color.Color(ink)
			if part.marked {
				c = accent
			}
			p.text(x, y, part.text, c)
			x += textWidth(part.text)
		}
		y += lineHeight
	}
	y += 4
	for _, line := range wrap(f.Property, cols) {
		p.text(margin, y, line, ink)
		y += lineHeight
	}

	y += 20
	half := (right - margin) / 2
	for i, sig := range document.Signatures {
		x := margin + i*half
		p.text(x, y, sig, ink)
		p.hline(x+textWidth(sig)+6, x+half-12, y+2)
	}
}

// find returns the byte range of sub in s once both are reduced to single
// spaced words, the form wrap lays out.
func find(s, sub string) (start, end int, ok bool) {
	joined := strings.Join(strings.Fields(s), " ")
	sub = strings.Join(strings.Fields(sub), " ")
	i := strings.Index(joined, sub)
	if sub == "" || i < 0 {
		return 0, 0, false
	}
	return i, i + len(sub), true
}

type segment struct {
	text   string
	marked bool
}

// highlight cuts wrapped lines into segments, marking the bytes in
// [start, end) of the text the lines were wrapped from.
func highlight(lines []string, start, end int) [][]segment {
	out := make([][]segment, 0, len(lines))
	offset := 0
	for _, line := range lines {
		lo := min(max(start-offset, 0), len(line))
		hi := min(max(end-offset, 0), len(line))

		var parts []segment
		if lo > 0 {
			parts = append(parts, segment{text: line[:lo]})
		}
		if hi > lo {
			parts = append(parts, segment{text: line[lo:hi], marked: true})
		}
		if hi < len(line) {
			parts = append(parts, segment{text: line[hi:]})
		}
		out = append(out, parts)
		offset += len(line) + 1
	}
	return out
}

// wrap splits s into lines of at most width characters on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
