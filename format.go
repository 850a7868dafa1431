//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reader needs io.ReaderAt for archive/zip
type Reader interface {
	io.Reader
	io.ReaderAt
}

// Writer
type Writer interface {
	io.Writer
}

// ErrDecodeUnsupported is returned by write-only formats
var ErrDecodeUnsupported = errors.New("format can only be written")

// Printable file format
type Formatter interface {
	Parse(args []string) (err error)
	Parsed() bool
	Args() (args []string)
	NArg() int
	PrintDefaults()

	Decode(reader Reader, size int64) (printable Printable, err error)
	Encode(writer Writer, printable Printable) (err error)
}

// Printable to file format
type NewFormatter func(suffix string) (formatter Formatter)

var formatterMap map[string]NewFormatter

func RegisterFormatter(suffix string, newFormatter NewFormatter) {
	if formatterMap == nil {
		formatterMap = make(map[string]NewFormatter)
	}

	formatterMap[suffix] = newFormatter
}

// FormatterSuffixes returns the registered suffixes, sorted
func FormatterSuffixes() (list []string) {
	for suffix := range formatterMap {
		list = append(list, suffix)
	}
	sort.Strings(list)

	return
}

func FormatterUsage() {
	for _, suffix := range FormatterSuffixes() {
		newFormatter := formatterMap[suffix]
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Options for '%s':\n", suffix)
		fmt.Fprintln(os.Stderr)
		newFormatter(suffix).PrintDefaults()
	}
}

type Format struct {
	Formatter
	Suffix   string
	Filename string
}

func NewFormat(filename string, args []string) (format *Format, err error) {
	var formatter Formatter
	var suffix string

	// Longest suffix wins, so '.layers.bmp' style suffixes are stable
	for _, candidate := range FormatterSuffixes() {
		if strings.HasSuffix(filename, candidate) && len(candidate) > len(suffix) {
			suffix = candidate
		}
	}

	if suffix != "" {
		formatter = formatterMap[suffix](suffix)
	}

	if formatter == nil {
		err = fmt.Errorf("%s: File extension unknown", filename)
		return
	}

	err = formatter.Parse(args)
	if err != nil {
		return
	}

	format = &Format{
		Formatter: formatter,
		Suffix:    suffix,
		Filename:  filename,
	}
	return
}

func (format *Format) Printable() (printable Printable, err error) {
	reader, err := os.Open(format.Filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	filesize, err := reader.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}

	_, err = reader.Seek(0, io.SeekStart)
	if err != nil {
		return
	}

	decoded, err := format.Decode(reader, filesize)
	if err != nil {
		return
	}

	printable = decoded
	return
}

// Write writes a printable to the file format
func (format *Format) SetPrintable(printable Printable) (err error) {
	writer, err := os.Create(format.Filename)
	if err != nil {
		return
	}
	defer func() { writer.Close() }()

	err = format.Encode(writer, printable)
	if err != nil {
		return
	}

	return
}
