//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"testing"

	"bufio"
	"image"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	gm_eye = `Image
XXXXX
XX XX
X X X
XX XX
XXXXX
`
	gm_eye_dec = `Box
X   X



X   X
`

	gm_bottom = `Bottom

 XXX
XXXXX
XXXXX
XXXXX
`

	gm_bottom_dec = `Bottom Decimated


  X
XXXXX
XXXXX
`
)

func grayFrom(desc string) (gm *image.Gray) {
	reader := strings.NewReader(desc)
	scanner := bufio.NewScanner(reader)
	scanner.Scan()

	var lines []string
	stride := 0
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		if len(line) > stride {
			stride = len(line)
		}
	}

	pix := make([]uint8, stride*len(lines))
	for y, line := range lines {
		n := y * stride
		for x, c := range line {
			if c != ' ' {
				pix[n+x] = 0xff
			}
		}
	}

	gm = &image.Gray{
		Rect:   image.Rect(0, 0, stride, len(lines)),
		Stride: stride,
		Pix:    pix,
	}

	return
}

func TestDecimate(t *testing.T) {
	table := []struct {
		in  string
		out string
	}{
		{in: gm_bottom, out: gm_bottom_dec},
		{in: gm_eye, out: gm_eye_dec},
	}

	for _, item := range table {
		gm_in := grayFrom(item.in)
		gm_out := grayFrom(item.out)

		val := decimateGray(gm_in)

		for n := 0; n < len(val.Pix); n++ {
			if val.Pix[n] != gm_out.Pix[n] {
				t.Fatalf("%s %d expected %#v, got %#v", item.out, n, gm_out.Pix[n], val.Pix[n])
			}
		}
	}
}

func TestDecimatedPrintable(t *testing.T) {
	grid := Grid{Spacing: r3.Vec{X: 1, Y: 1, Z: 1}, Dims: [3]int{5, 5, 3}}
	vol := NewVolume(grid, VoxelFilled)

	dec := NewDecimatedPrintable(vol)
	dec.FirstLayer = 1
	dec.Layers = 1

	// Untouched layers pass through
	if got := countFilled(dec.Layer(0).Image); got != 25 {
		t.Errorf("layer 0: expected 25 filled, got %v", got)
	}

	// The border is 'all on', so a solid layer stays solid
	if got := countFilled(dec.Layer(1).Image); got != 25 {
		t.Errorf("layer 1: expected 25 filled, got %v", got)
	}

	vol.Set(2, 2, 1, VoxelEmpty)
	if got := countFilled(dec.Layer(1).Image); got != 16 {
		t.Errorf("layer 1 with hole: expected 16 filled, got %v", got)
	}
}

func countFilled(gm *image.Gray) (count int) {
	for _, v := range gm.Pix {
		if v == VoxelFilled {
			count++
		}
	}

	return
}
