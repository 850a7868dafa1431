//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package bmp

import (
	"archive/zip"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/spf13/pflag"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/msam/versa3d"
)

// ErrSwath is returned for an unusable swath geometry
type ErrSwath struct {
	Width, Overlap int
}

func (e ErrSwath) Error() string {
	return fmt.Sprintf("swath width %v with overlap %v is invalid", e.Width, e.Overlap)
}

type BMPFormat struct {
	*pflag.FlagSet

	SwathWidth   int
	SwathOverlap int
}

func NewBMPFormatter(suffix string) (bf *BMPFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	bf = &BMPFormat{
		FlagSet: flagSet,
	}

	bf.IntVarP(&bf.SwathWidth, "swath-width", "w", 0, "Split layers into swaths of this many pixels (0 writes whole layers)")
	bf.IntVarP(&bf.SwathOverlap, "swath-overlap", "o", 0, "Pixels shared by neighbouring swaths")

	bf.SetInterspersed(false)

	return
}

// Split cuts img into vertical swaths of width pixels. Consecutive swaths
// start width-overlap pixels apart; the last swath may be narrower.
func Split(img *image.Gray, width, overlap int) (swaths []*image.Gray, err error) {
	if width <= 0 || overlap < 0 || overlap >= width {
		err = ErrSwath{Width: width, Overlap: overlap}
		return
	}

	bounds := img.Bounds()
	step := width - overlap

	for x := bounds.Min.X; x < bounds.Max.X; x += step {
		right := x + width
		if right > bounds.Max.X {
			right = bounds.Max.X
		}

		rect := image.Rect(x, bounds.Min.Y, right, bounds.Max.Y)
		swath := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(swath, swath.Bounds(), img, rect.Min, draw.Src)

		swaths = append(swaths, swath)

		if right == bounds.Max.X {
			break
		}
	}

	return
}

func layerName(n int) string {
	return fmt.Sprintf("layer/%05d.bmp", n)
}

func swathName(n, s int) string {
	return fmt.Sprintf("layer/%05d_%02d.bmp", n, s)
}

func writeBMP(archive *zip.Writer, name string, img image.Image) (err error) {
	var writer io.Writer
	writer, err = archive.Create(name)
	if err != nil {
		return
	}

	err = bmp.Encode(writer, img)

	return
}

// Encode writes every layer as a BMP image into a zip archive
func (bf *BMPFormat) Encode(writer versa3d.Writer, printable versa3d.Printable) (err error) {
	if bf.SwathWidth != 0 && (bf.SwathWidth < 0 || bf.SwathOverlap < 0 || bf.SwathOverlap >= bf.SwathWidth) {
		err = ErrSwath{Width: bf.SwathWidth, Overlap: bf.SwathOverlap}
		return
	}

	archive := zip.NewWriter(writer)
	defer func() {
		if err != nil {
			archive.Close()
		}
	}()

	err = versa3d.WithEachLayer(context.Background(), printable, func(n int, layer versa3d.Layer) (err error) {
		if bf.SwathWidth == 0 {
			err = writeBMP(archive, layerName(n), layer.Image)
			return
		}

		swaths, err := Split(layer.Image, bf.SwathWidth, bf.SwathOverlap)
		if err != nil {
			return
		}

		for s, swath := range swaths {
			err = writeBMP(archive, swathName(n, s), swath)
			if err != nil {
				return
			}
		}

		return
	})
	if err != nil {
		return
	}

	err = archive.Close()

	return
}

// Decode is not supported; layer archives are printer input only
func (bf *BMPFormat) Decode(reader versa3d.Reader, filesize int64) (printable versa3d.Printable, err error) {
	err = versa3d.ErrDecodeUnsupported
	return
}
