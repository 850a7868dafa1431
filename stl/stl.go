//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package stl reads and writes STL surface meshes, both binary and ASCII
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-restruct/restruct"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/msam/versa3d"
)

const (
	headerSize   = 84
	triangleSize = 50
)

type stlHeader struct {
	Header [80]byte // 00: Free text, must not start with "solid"
	Count  uint32   // 50: Number of triangles
}

type stlTriangle struct {
	Normal    [3]float32    // 00:
	Vertex    [3][3]float32 // 0c:
	Attribute uint16        // 30: Unused
}

type ErrMalformed string

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("stl: %s", string(e))
}

// Decode reads a binary or ASCII STL stream
func Decode(reader io.Reader) (mesh *versa3d.Mesh, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return
	}

	if isBinary(data) {
		mesh, err = decodeBinary(data)
		return
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		mesh, err = decodeASCII(data)
		return
	}

	err = ErrMalformed("unrecognized STL data")
	return
}

// Some binary exporters do start the header with 'solid', so the size
// check takes priority.
func isBinary(data []byte) bool {
	if len(data) < headerSize {
		return false
	}

	count := binary.LittleEndian.Uint32(data[80:84])
	return int64(len(data)) == headerSize+int64(count)*triangleSize
}

func decodeBinary(data []byte) (mesh *versa3d.Mesh, err error) {
	var header stlHeader
	err = restruct.Unpack(data[:headerSize], binary.LittleEndian, &header)
	if err != nil {
		return
	}

	triangles := make([]versa3d.Triangle, 0, header.Count)
	for n := 0; n < int(header.Count); n++ {
		base := headerSize + n*triangleSize

		var tri stlTriangle
		err = restruct.Unpack(data[base:base+triangleSize], binary.LittleEndian, &tri)
		if err != nil {
			err = fmt.Errorf("stl: triangle %d: %w", n, err)
			return
		}

		var t versa3d.Triangle
		for i, v := range tri.Vertex {
			t[i] = r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
		}
		triangles = append(triangles, t)
	}

	mesh = versa3d.NewMesh(triangles)

	return
}

func decodeASCII(data []byte) (mesh *versa3d.Mesh, err error) {
	var triangles []versa3d.Triangle
	var vertices []r3.Vec

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				err = ErrMalformed(fmt.Sprintf("line %d: vertex needs 3 coordinates", line))
				return
			}
			var v [3]float64
			for n := range v {
				v[n], err = strconv.ParseFloat(fields[n+1], 64)
				if err != nil {
					err = ErrMalformed(fmt.Sprintf("line %d: %v", line, err))
					return
				}
			}
			vertices = append(vertices, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
		case "endloop":
			if len(vertices) != 3 {
				err = ErrMalformed(fmt.Sprintf("line %d: facet with %d vertices", line, len(vertices)))
				return
			}
			triangles = append(triangles, versa3d.Triangle{vertices[0], vertices[1], vertices[2]})
			vertices = vertices[:0]
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	mesh = versa3d.NewMesh(triangles)

	return
}

// Encode writes mesh as binary STL
func Encode(writer io.Writer, mesh *versa3d.Mesh) (err error) {
	header := stlHeader{
		Count: uint32(mesh.TriangleCount()),
	}
	copy(header.Header[:], "versa3d")

	data, err := restruct.Pack(binary.LittleEndian, &header)
	if err != nil {
		return
	}

	_, err = writer.Write(data)
	if err != nil {
		return
	}

	for _, t := range mesh.Triangles() {
		var tri stlTriangle

		normal := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
		if norm := r3.Norm(normal); norm > 0 {
			normal = r3.Scale(1/norm, normal)
		}
		tri.Normal = [3]float32{float32(normal.X), float32(normal.Y), float32(normal.Z)}

		for i, v := range t {
			tri.Vertex[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}

		data, err = restruct.Pack(binary.LittleEndian, &tri)
		if err != nil {
			return
		}

		_, err = writer.Write(data)
		if err != nil {
			return
		}
	}

	return
}

// Load reads an STL file
func Load(filename string) (mesh *versa3d.Mesh, err error) {
	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	mesh, err = Decode(reader)
	if err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}

	return
}

// Save writes an STL file
func Save(filename string, mesh *versa3d.Mesh) (err error) {
	writer, err := os.Create(filename)
	if err != nil {
		return
	}

	err = Encode(writer, mesh)
	if err != nil {
		writer.Close()
		return
	}

	err = writer.Close()

	return
}
