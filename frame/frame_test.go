package frame

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/yashsriram/yart/types"
)

func testBuffer() *Buffer {
	b := New(2, 2)
	b.Set(0, 0, types.RGB(1, 0, 0))
	b.Set(1, 0, types.RGB(0, 1, 0))
	b.Set(0, 1, types.RGB(0, 0, 1))
	// out of range and fractional channels
	b.Set(1, 1, types.RGB(2, -1, 0.999))
	return b
}

func TestBufferLayout(t *testing.T) {
	b := New(70000, 2)
	if len(b.Pixels) != 140000 {
		t.Fatalf("expected 140000 pixels; got %d", len(b.Pixels))
	}

	b.Set(69999, 1, types.RGB(1, 1, 1))
	if b.Pixels[139999] != types.RGB(1, 1, 1) {
		t.Fatal("expected pixel (69999, 1) to be stored at the end of the second row")
	}
	if b.At(69999, 1) != types.RGB(1, 1, 1) || b.At(69999, 0) != (types.Color{}) {
		t.Fatal("expected At to read back the pixel written by Set")
	}
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testBuffer()); err != nil {
		t.Fatal(err)
	}

	expOutput := "P3\n# rendered by yart\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n255 0 254\n"
	if buf.String() != expOutput {
		t.Fatalf("expected output:\n%s\ngot:\n%s", expOutput, buf.String())
	}
}

func TestImage(t *testing.T) {
	img := testBuffer().Image()
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("expected image bounds to be 2x2; got %v", img.Bounds())
	}

	c := img.NRGBAAt(1, 1)
	if c.R != 255 || c.G != 0 || c.B != 254 || c.A != 255 {
		t.Fatalf("expected pixel (1, 1) to be (255, 0, 254, 255); got %v", c)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	type spec struct {
		name string
	}
	specs := []spec{
		{"out.ppm"},
		{"out"},
		{"out.png"},
		{"out.jpg"},
		{"out.bmp"},
		{"out.tif"},
	}

	for index, s := range specs {
		path := filepath.Join(dir, s.name)
		if err := Save(path, testBuffer()); err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if len(data) == 0 {
			t.Fatalf("[spec %d] expected %s to have content", index, s.name)
		}
	}

	img, err := imaging.Open(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("expected saved png to be 2x2; got %v", img.Bounds())
	}

	err = Save(filepath.Join(dir, "out.xyz"), testBuffer())
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("expected unsupported format error; got %v", err)
	}
}

func TestSaveThumbnail(t *testing.T) {
	dir := t.TempDir()
	b := New(40, 20)

	path := filepath.Join(dir, "frame.png")
	thumbPath := ThumbnailName(path)
	if thumbPath != filepath.Join(dir, "frame_thumb.png") {
		t.Fatalf("expected thumbnail name to be frame_thumb.png; got %s", thumbPath)
	}

	if err := SaveThumbnail(thumbPath, b, 10); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(thumbPath)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Fatalf("expected thumbnail to be 10x5; got %v", img.Bounds())
	}

	ppmThumb := filepath.Join(dir, "frame_thumb.ppm")
	if err = SaveThumbnail(ppmThumb, b, 10); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(ppmThumb)
	if !strings.HasPrefix(string(data), "P3\n# rendered by yart\n10 5\n255\n") {
		t.Fatalf("expected ppm thumbnail header; got %q", string(data))
	}
}

func TestContentType(t *testing.T) {
	type spec struct {
		name string
		exp  string
	}
	specs := []spec{
		{"frame.png", "image/png"},
		{"frame.JPG", "image/jpeg"},
		{"frame.ppm", "image/x-portable-pixmap"},
		{"frame", "image/x-portable-pixmap"},
	}

	for index, s := range specs {
		if got := ContentType(s.name); got != s.exp {
			t.Fatalf("[spec %d] expected content type %s; got %s", index, s.exp, got)
		}
	}
}

type mockS3 struct {
	s3iface.S3API

	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	m.input = input
	m.body, _ = io.ReadAll(input.Body)
	return &s3.PutObjectOutput{}, m.err
}

func TestUpload(t *testing.T) {
	client := &mockS3{}
	up := newUploader(client, "renders")

	data, err := Encode("scene.png", testBuffer())
	if err != nil {
		t.Fatal(err)
	}

	if err = up.Upload(context.Background(), "frames/scene.png", data); err != nil {
		t.Fatal(err)
	}

	if aws.StringValue(client.input.Bucket) != "renders" {
		t.Fatalf("expected bucket to be renders; got %s", aws.StringValue(client.input.Bucket))
	}
	if aws.StringValue(client.input.Key) != "frames/scene.png" {
		t.Fatalf("expected key to be frames/scene.png; got %s", aws.StringValue(client.input.Key))
	}
	if aws.StringValue(client.input.ContentType) != "image/png" {
		t.Fatalf("expected content type to be image/png; got %s", aws.StringValue(client.input.ContentType))
	}
	if aws.Int64Value(client.input.ContentLength) != int64(len(data)) || !bytes.Equal(client.body, data) {
		t.Fatal("expected uploaded body to match encoded frame")
	}

	client.err = errors.New("access denied")
	err = up.Upload(context.Background(), "frames/scene.png", data)
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected upload error to be propagated; got %v", err)
	}
}

func TestNewUploaderRequiresBucket(t *testing.T) {
	if _, err := NewUploader(S3Config{}); err != ErrMissingBucket {
		t.Fatalf("expected to get %v; got %v", ErrMissingBucket, err)
	}

	up, err := NewUploader(S3Config{Bucket: "renders", Region: "us-east-1", Endpoint: "http://localhost:9000"})
	if err != nil {
		t.Fatal(err)
	}
	if up.Bucket() != "renders" {
		t.Fatalf("expected bucket to be renders; got %s", up.Bucket())
	}
}
