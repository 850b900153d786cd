package icon

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "image/png"

	platformerrors "storeicons/internal/platform/errors"
)

func TestRender_ExactTargetDimensions(t *testing.T) {
	renderer := NewRenderer()
	src := newTestSource(1024, 1024)

	tests := []struct {
		name          string
		width, height int
	}{
		{"downscale", 44, 44},
		{"upscale", 2048, 2048},
		{"non-square target", 310, 150},
		{"tiny", 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := renderer.Render(src, tt.width, tt.height)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			b := out.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestRenderPNG_Idempotent(t *testing.T) {
	renderer := NewRenderer()
	src := newTestSource(400, 400)

	first, err := renderer.RenderPNG(src, 88, 88)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.RenderPNG(src, 88, 88)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same input produced different bytes")
	}
}

func TestRenderPNG_RoundTripDecodes(t *testing.T) {
	renderer := NewRenderer()
	src := newTestSource(300, 300)

	data, err := renderer.RenderPNG(src, 50, 50)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "png" {
		t.Errorf("output format %s, want png", format)
	}
	b := decoded.Bounds()
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("decoded output is %dx%d, want 50x50", b.Dx(), b.Dy())
	}
}

func TestRender_AlphaPreserved(t *testing.T) {
	renderer := NewRenderer()

	opaque, err := renderer.Render(newTestSource(200, 200), 32, 32)
	if err != nil {
		t.Fatalf("Render opaque: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if opaque.NRGBAAt(x, y).A != 255 {
				t.Fatalf("opaque source produced alpha %d at (%d,%d)", opaque.NRGBAAt(x, y).A, x, y)
			}
		}
	}

	transparent, err := renderer.Render(newTransparentSource(200, 200), 32, 32)
	if err != nil {
		t.Fatalf("Render transparent: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if transparent.NRGBAAt(x, y).A != 0 {
				t.Fatalf("transparent source produced alpha %d at (%d,%d)", transparent.NRGBAAt(x, y).A, x, y)
			}
		}
	}
}

func TestRender_WithSharpening(t *testing.T) {
	renderer := NewRenderer(WithSharpening())
	src := newTestSource(512, 512)

	// Below the threshold the sharpened path runs; either way dimensions are
	// exact and output stays decodable.
	for _, size := range []int{16, 44, 127, 128, 256} {
		out, err := renderer.Render(src, size, size)
		if err != nil {
			t.Fatalf("Render %d: %v", size, err)
		}
		if b := out.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("size %d: got %dx%d", size, b.Dx(), b.Dy())
		}
	}
}

func TestRender_BadInputs(t *testing.T) {
	renderer := NewRenderer()

	_, err := renderer.Render(nil, 44, 44)
	if !platformerrors.IsKind(err, platformerrors.KindDecode) {
		t.Errorf("nil source: expected decode kind, got %v", err)
	}

	_, err = renderer.Render(&SourceImage{}, 44, 44)
	if !platformerrors.IsKind(err, platformerrors.KindDecode) {
		t.Errorf("empty source: expected decode kind, got %v", err)
	}

	src := newTestSource(100, 100)
	for _, dims := range [][2]int{{0, 44}, {44, 0}, {-1, 44}} {
		_, err := renderer.Render(src, dims[0], dims[1])
		if !platformerrors.IsKind(err, platformerrors.KindConfig) {
			t.Errorf("target %dx%d: expected config kind, got %v", dims[0], dims[1], err)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("png bytes")

	if err := WriteFile(dir, "StoreLogo.scale-100.png", data); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "StoreLogo.scale-100.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("written content differs")
	}

	// No temp files may survive.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", entry.Name())
		}
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "absent"), "a.png", []byte("x"))
	if !platformerrors.IsKind(err, platformerrors.KindEncode) {
		t.Errorf("expected encode kind, got %v", err)
	}
}
