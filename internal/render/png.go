package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/bitchess/internal/board"
)

var (
	boldFont    = mustParse(gobold.TTF)
	regularFont = mustParse(goregular.TTF)
)

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("parse embedded font: %v", err))
	}
	return f
}

func newFace(f *opentype.Font, size int) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// Image rasterizes b. The shapes come from the SVG drawing; piece letters and
// coordinates are set with the Go fonts since the rasterizer has no text
// support.
func Image(b *board.Board, opts Options) (*image.RGBA, error) {
	opts = opts.withDefaults()
	size := 8 * opts.SquareSize

	var buf bytes.Buffer
	drawBoard(&buf, b, opts, false)
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	face, err := newFace(boldFont, opts.SquareSize/2)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	d := &font.Drawer{Dst: rgba, Face: face}
	ascent := face.Metrics().Ascent
	b.ForEach(func(sq board.Square, p board.Piece) {
		ink := opts.Theme.BlackPiece
		if p.Color() == board.Black {
			ink = opts.Theme.WhitePiece
		}
		letter := strings.ToUpper(p.String())
		x, y := opts.origin(sq)
		d.Src = image.NewUniform(ink)
		width := d.MeasureString(letter)
		d.Dot = fixed.Point26_6{
			X: fixed.I(x+opts.SquareSize/2) - width/2,
			Y: fixed.I(y+opts.SquareSize/2) + ascent/2 - fixed.I(1),
		}
		d.DrawString(letter)
	})

	small, err := newFace(regularFont, opts.SquareSize/5)
	if err != nil {
		return nil, err
	}
	defer small.Close()
	coords := &font.Drawer{Dst: rgba, Src: image.NewUniform(opts.Theme.TextColor), Face: small}
	for _, l := range opts.coordinates() {
		coords.Dot = fixed.P(l.x, l.y)
		coords.DrawString(l.text)
	}
	return rgba, nil
}

// WritePNG writes b to w as a PNG image.
func WritePNG(w io.Writer, b *board.Board, opts Options) error {
	img, err := Image(b, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
