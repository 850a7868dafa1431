//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package uvj

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"github.com/msam/versa3d"
)

type UVJLayer struct {
	Z float32
}

type UVJConfig struct {
	Properties versa3d.Properties
	Layers     []UVJLayer
}

type UVJ struct {
	properties versa3d.Properties
	Layers     []UVJLayer
	layerPng   []([]byte)
}

type UVJFormat struct {
	*pflag.FlagSet
}

func NewUVJFormatter(suffix string) (sf *UVJFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	sf = &UVJFormat{
		FlagSet: flagSet,
	}

	sf.SetInterspersed(false)

	return
}

func (sf *UVJFormat) Encode(writer versa3d.Writer, printable versa3d.Printable) (err error) {
	archive := zip.NewWriter(writer)
	defer func() {
		if err != nil {
			archive.Close()
		}
	}()

	prop := printable.Properties()

	config := UVJConfig{
		Properties: prop,
		Layers:     make([]UVJLayer, prop.Size.Layers),
	}

	// Create all the layers
	err = versa3d.WithEachLayer(context.Background(), printable, func(n int, layer versa3d.Layer) (err error) {
		filename := fmt.Sprintf("slice/%08d.png", n)

		var writer io.Writer
		writer, err = archive.Create(filename)
		if err != nil {
			return
		}

		err = png.Encode(writer, layer.Image)
		if err != nil {
			return
		}

		config.Layers[n] = UVJLayer{
			Z: layer.Z,
		}

		return
	})
	if err != nil {
		return
	}

	// Create the config file
	fileConfig, err := archive.Create("config.json")
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return
	}

	_, err = fileConfig.Write(append(data, '\n'))
	if err != nil {
		return
	}

	err = archive.Close()

	return
}

func (sf *UVJFormat) Decode(reader versa3d.Reader, filesize int64) (printable versa3d.Printable, err error) {
	archive, err := zip.NewReader(reader, filesize)
	if err != nil {
		return
	}

	fileMap := make(map[string](*zip.File))

	for _, file := range archive.File {
		fileMap[file.Name] = file
	}

	cfg, found := fileMap["config.json"]
	if !found {
		err = errors.New("config.json not found in archive")
		return
	}

	cfg_reader, err := cfg.Open()
	if err != nil {
		return
	}
	defer func() { cfg_reader.Close() }()

	// Load the config file
	data, err := io.ReadAll(cfg_reader)
	if err != nil {
		return
	}

	var config UVJConfig

	err = json.Unmarshal(data, &config)
	if err != nil {
		return
	}

	// Check layers
	if len(config.Layers) > 0 && len(config.Layers) != config.Properties.Size.Layers {
		err = fmt.Errorf("config.json: expected %v layers, found %v layers", config.Properties.Size.Layers, len(config.Layers))
		return
	}

	// Collect the layer files
	layerPng := make([]([]byte), config.Properties.Size.Layers)
	for n := 0; n < len(layerPng); n++ {
		name := fmt.Sprintf("slice/%08d.png", n)
		file, ok := fileMap[name]
		if !ok {
			err = fmt.Errorf("%s: Missing from archive", name)
			return
		}

		layerPng[n], err = readFile(file)
		if err != nil {
			return
		}
	}

	uvj := &UVJ{
		properties: config.Properties,
		Layers:     config.Layers,
		layerPng:   layerPng,
	}

	printable = uvj

	return
}

func readFile(file *zip.File) (data []byte, err error) {
	reader, err := file.Open()
	if err != nil {
		return
	}
	defer reader.Close()

	data, err = io.ReadAll(reader)

	return
}

func (uvj *UVJ) Properties() (prop versa3d.Properties) {
	prop = uvj.properties

	return
}

func (uvj *UVJ) Layer(index int) (layer versa3d.Layer) {
	if len(uvj.Layers) == 0 {
		layer.Z = uvj.properties.Size.LayerHeight * float32(index)
	} else {
		layer.Z = uvj.Layers[index].Z
	}

	pngImage, err := png.Decode(bytes.NewReader(uvj.layerPng[index]))
	if err != nil {
		err = fmt.Errorf("layer %v: %w", index, err)
		panic(err)
	}

	gray, ok := pngImage.(*image.Gray)
	if !ok {
		gray = image.NewGray(pngImage.Bounds())
		draw.Draw(gray, gray.Bounds(), pngImage, pngImage.Bounds().Min, draw.Src)
	}

	layer.Image = gray

	return
}
