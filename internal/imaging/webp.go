package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/cockroachdb/errors"
	"golang.org/x/image/draw"
)

const (
	MaxSide        = 600
	DefaultQuality = 80
	ContentType    = "image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image")

// ToWebP decodifica JPEG, PNG ou WebP, reduz para caber em maxSide x
// maxSide mantendo a proporção e devolve o WebP.
func ToWebP(r io.Reader, maxSide int, quality float32) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode image"), ErrUnsupportedImage)
	}

	img := Fit(src, maxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}

// Fit só reduz; imagens menores que maxSide voltam intactas.
func Fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
