package frame

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/yashsriram/yart/types"
)

var contentTypes = map[string]string{
	".ppm":  "image/x-portable-pixmap",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".bmp":  "image/bmp",
}

// ContentType returns the mime type for an output file name. Unknown
// extensions map to the PPM type as that is the default output format.
func ContentType(name string) string {
	if ct, ok := contentTypes[outputExt(name)]; ok {
		return ct
	}
	return contentTypes[".ppm"]
}

func outputExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ".ppm"
	}
	return ext
}

// Encode the frame using the format implied by the name's extension. Files
// without an extension are encoded as PPM.
func Encode(name string, b *Buffer) ([]byte, error) {
	var img image.Image
	ext := outputExt(name)
	if ext != ".ppm" {
		img = b.Image()
	}

	var buf bytes.Buffer
	if err := encode(&buf, ext, img, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save the frame to a file. The image format is selected by the file extension.
func Save(path string, b *Buffer) error {
	data, err := Encode(path, b)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("frame: could not write %s: %w", path, err)
	}
	return nil
}

// Save a downscaled copy of the frame whose width and height do not exceed
// maxSize. The aspect ratio is preserved.
func SaveThumbnail(path string, b *Buffer, maxSize uint) error {
	thumb := resize.Thumbnail(maxSize, maxSize, b.Image(), resize.Lanczos3)

	var buf bytes.Buffer
	if err := encode(&buf, outputExt(path), thumb, nil); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("frame: could not write %s: %w", path, err)
	}
	return nil
}

// ThumbnailName derives the thumbnail file name for an output file.
func ThumbnailName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

// Encode img; for PPM output the unquantized buffer is used when available.
func encode(buf *bytes.Buffer, ext string, img image.Image, b *Buffer) error {
	if ext == ".ppm" {
		if b == nil {
			b = FromImage(img)
		}
		return WritePPM(buf, b)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("frame: unsupported output format '%s'", ext)
	}
	if err = imaging.Encode(buf, img, format); err != nil {
		return fmt.Errorf("frame: could not encode %s image: %w", format, err)
	}
	return nil
}

// FromImage converts an image into a frame buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := New(uint32(bounds.Dx()), uint32(bounds.Dy()))
	nrgba := imaging.Clone(img)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := nrgba.NRGBAAt(x, y)
			b.Set(uint32(x), uint32(y), types.RGB(
				float64(c.R)/255,
				float64(c.G)/255,
				float64(c.B)/255,
			))
		}
	}
	return b
}
