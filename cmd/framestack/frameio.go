package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"framestack/internal/models"
	"framestack/pkg/aggregate"
	"framestack/pkg/sample"
)

// parseSourceArg splits an input argument into a path and an optional
// single-letter category label suffix ("frame007.png:P"). Anything that is
// not a recognized picture-type letter maps to the unknown label.
func parseSourceArg(arg string, index int) models.SourceFile {
	src := models.SourceFile{Path: arg, Index: index}
	if i := strings.LastIndexByte(arg, ':'); i >= 0 && i == len(arg)-2 {
		src.Path = arg[:i]
		src.Label = aggregate.ParseLabel(arg[i+1])
	}
	return src
}

// rawExt reports whether the path names a raw plane dump, unwrapping a
// trailing .gz.
func rawExt(path string) (isRaw, isGzip bool) {
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		isGzip = true
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gray", ".raw":
		return true, isGzip
	}
	return false, isGzip
}

// loadFrame decodes one source file into a frame. PNG and JPEG images load
// as U8 planes (or a U16 plane for 16-bit grayscale PNG); .gray/.raw dumps,
// optionally gzip-compressed, load as a single plane of the given kind and
// dimensions.
func loadFrame(src models.SourceFile, rawKind sample.Kind, rawWidth, rawHeight int) (*sample.Frame, error) {
	if isRaw, isGzip := rawExt(src.Path); isRaw {
		return loadRawFrame(src.Path, isGzip, rawKind, rawWidth, rawHeight)
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", src.Path, err)
	}
	return imageToFrame(img), nil
}

// loadRawFrame reads a single-plane sample dump.
func loadRawFrame(path string, isGzip bool, kind sample.Kind, width, height int) (*sample.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raw input %s requires -raw-width and -raw-height", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if isGzip {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	plane := sample.NewPlane(kind, width, height)
	if _, err := io.ReadFull(r, plane.Pix); err != nil {
		return nil, fmt.Errorf("raw input %s is short for %dx%d %v: %w", path, width, height, kind, err)
	}
	return &sample.Frame{Planes: []*sample.Plane{plane}}, nil
}

// imageToFrame converts a decoded image to planes: grayscale images become
// one U8 or U16 luma plane, everything else becomes three U8 planes (R, G,
// B; alpha is dropped).
func imageToFrame(img image.Image) *sample.Frame {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		p := sample.NewPlane(sample.U8, w, h)
		for y := 0; y < h; y++ {
			copy(p.Row(y), src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return &sample.Frame{Planes: []*sample.Plane{p}}

	case *image.Gray16:
		// image.Gray16 stores big-endian samples; planes are
		// little-endian.
		p := sample.NewPlane(sample.U16, w, h)
		for y := 0; y < h; y++ {
			row := p.Row(y)
			srcRow := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				row[2*x] = srcRow[2*x+1]
				row[2*x+1] = srcRow[2*x]
			}
		}
		return &sample.Frame{Planes: []*sample.Plane{p}}
	}

	planes := []*sample.Plane{
		sample.NewPlane(sample.U8, w, h),
		sample.NewPlane(sample.U8, w, h),
		sample.NewPlane(sample.U8, w, h),
	}
	for y := 0; y < h; y++ {
		rows := [3][]byte{planes[0].Row(y), planes[1].Row(y), planes[2].Row(y)}
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			rows[0][x] = c.R
			rows[1][x] = c.G
			rows[2][x] = c.B
		}
	}
	return &sample.Frame{Planes: planes}
}

// frameToImage converts an output frame back to a stdlib image when its
// layout has one: single-plane U8/U16 grayscale or three-plane U8 RGB.
func frameToImage(f *sample.Frame) (image.Image, error) {
	switch {
	case len(f.Planes) == 1 && f.Planes[0].Kind == sample.U8:
		p := f.Planes[0]
		img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
		for y := 0; y < p.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+p.Width], p.Row(y))
		}
		return img, nil

	case len(f.Planes) == 1 && f.Planes[0].Kind == sample.U16:
		p := f.Planes[0]
		img := image.NewGray16(image.Rect(0, 0, p.Width, p.Height))
		for y := 0; y < p.Height; y++ {
			row := p.Row(y)
			dst := img.Pix[y*img.Stride:]
			for x := 0; x < p.Width; x++ {
				dst[2*x] = row[2*x+1]
				dst[2*x+1] = row[2*x]
			}
		}
		return img, nil

	case len(f.Planes) == 3 && f.Planes[0].Kind == sample.U8:
		p := f.Planes[0]
		img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
		for y := 0; y < p.Height; y++ {
			r, g, b := f.Planes[0].Row(y), f.Planes[1].Row(y), f.Planes[2].Row(y)
			dst := img.Pix[y*img.Stride:]
			for x := 0; x < p.Width; x++ {
				dst[4*x+0] = r[x]
				dst[4*x+1] = g[x]
				dst[4*x+2] = b[x]
				dst[4*x+3] = 0xFF
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("frame layout (%d planes of %v) has no image form",
		len(f.Planes), f.Planes[0].Kind)
}

// writeFrame saves the output frame. PNG and JPEG targets need an image
// form; .gray/.raw targets dump plane bytes in order, gzip-compressed for a
// .gz suffix.
func writeFrame(path string, f *sample.Frame) error {
	if isRaw, isGzip := rawExt(path); isRaw {
		return writeRawFrame(path, isGzip, f)
	}

	img, err := frameToImage(f)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(out, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(out, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

func writeRawFrame(path string, isGzip bool, f *sample.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeRaw(out, isGzip, f); err != nil {
		out.Close()
		return err
	}
	// Close errors matter here: the file close flushes the dump to disk.
	return out.Close()
}

// writeRaw dumps plane bytes in order. The gzip stream is closed
// explicitly so a failed flush surfaces as an error instead of leaving a
// truncated dump behind a nil return.
func writeRaw(w io.Writer, isGzip bool, f *sample.Frame) error {
	if isGzip {
		gz := gzip.NewWriter(w)
		for _, p := range f.Planes {
			if _, err := gz.Write(p.Pix); err != nil {
				return err
			}
		}
		return gz.Close()
	}
	for _, p := range f.Planes {
		if _, err := w.Write(p.Pix); err != nil {
			return err
		}
	}
	return nil
}
