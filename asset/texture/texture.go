package texture

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nfnt/resize"
	"github.com/yashsriram/yart/asset"
	"github.com/yashsriram/yart/types"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// A texture image. Texels are stored row-major with row 0 at the top of the
// image and channel values normalized to [0, 1].
type Texture struct {
	Name string

	Width  int
	Height int

	Data []types.Color
}

// Load a texture from a resource. Plain (P3) PPM files are parsed directly;
// everything else is handed to the registered image decoders (png, jpeg, gif,
// bmp and tiff). If maxSize is positive, textures whose width or height
// exceed it are downscaled preserving their aspect ratio.
func New(res *asset.Resource, maxSize int) (*Texture, error) {
	data, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not read %s: %w", res.Path(), err)
	}

	var tex *Texture
	if res.Ext() == ".ppm" || bytes.HasPrefix(data, []byte("P3")) {
		tex, err = decodePPM(data)
	} else {
		var img image.Image
		img, _, err = image.Decode(bytes.NewReader(data))
		if err == nil {
			tex = FromImage(img)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	tex.Name = res.Name()
	if maxSize > 0 && (tex.Width > maxSize || tex.Height > maxSize) {
		name := tex.Name
		tex = FromImage(resize.Thumbnail(uint(maxSize), uint(maxSize), tex.Image(), resize.Bilinear))
		tex.Name = name
	}

	return tex, nil
}

// FromImage converts an image into a texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := &Texture{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   make([]types.Color, bounds.Dx()*bounds.Dy()),
	}

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			tex.Data[y*tex.Width+x] = types.RGB(
				float64(c.R)/0xffff,
				float64(c.G)/0xffff,
				float64(c.B)/0xffff,
			)
		}
	}

	return tex
}

// Image converts the texture into a 16-bit per channel image.
func (t *Texture) Image() image.Image {
	img := image.NewNRGBA64(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := t.Data[y*t.Width+x].Clamp()
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(math.Round(c[0] * 0xffff)),
				G: uint16(math.Round(c[1] * 0xffff)),
				B: uint16(math.Round(c[2] * 0xffff)),
				A: 0xffff,
			})
		}
	}
	return img
}

// Sample returns the texel nearest to the given uv coordinates. Coordinates
// outside [0, 1] wrap around; u runs along the columns and v along the rows
// starting from the top of the image.
func (t *Texture) Sample(uv types.Vec2) types.Color {
	if t.Width == 0 || t.Height == 0 {
		return types.Color{}
	}

	u := wrap(uv[0])
	v := wrap(uv[1])

	x := int(math.Round(u * float64(t.Width-1)))
	y := int(math.Round(v * float64(t.Height-1)))
	return t.Data[y*t.Width+x]
}

func wrap(c float64) float64 {
	// keep 1.0 as is so the last texel stays reachable
	if c >= 0 && c <= 1 {
		return c
	}
	c -= math.Floor(c)
	return c
}

// Parse a plain PPM image. Comments start with '#' and run to the end of the
// line; channel values are divided by the max value found in the header.
func decodePPM(data []byte) (*Texture, error) {
	var tokens []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx != -1 {
			line = line[:idx]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(tokens) < 4 || tokens[0] != "P3" {
		return nil, fmt.Errorf("ppm: missing P3 header")
	}

	var header [3]int
	for i := range header {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("ppm: invalid header value '%s'", tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], float64(header[2])

	values := tokens[4:]
	if len(values)%3 != 0 {
		return nil, fmt.Errorf("ppm: insufficient color information")
	}
	if len(values) < width*height*3 {
		return nil, fmt.Errorf("ppm: expected %d texels; got %d", width*height, len(values)/3)
	}

	tex := &Texture{
		Width:  width,
		Height: height,
		Data:   make([]types.Color, width*height),
	}
	for i := range tex.Data {
		var c types.Color
		for ch := 0; ch < 3; ch++ {
			v, err := strconv.ParseFloat(values[i*3+ch], 64)
			if err != nil {
				return nil, fmt.Errorf("ppm: invalid channel value '%s'", values[i*3+ch])
			}
			c[ch] = v / maxVal
		}
		tex.Data[i] = c
	}

	return tex, nil
}
