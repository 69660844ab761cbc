package qrcode_test

import (
	"bytes"
	"image/png"
	"testing"

	"coup/internal/qrcode"
)

func TestGenerate(t *testing.T) {
	data, err := qrcode.Generate(qrcode.SpectateURL("localhost:8080", "abc"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != qrcode.Size || b.Dy() != qrcode.Size {
		t.Fatalf("expected %dx%d image, got %v", qrcode.Size, qrcode.Size, b)
	}
}

func TestSpectateURL(t *testing.T) {
	if got := qrcode.SpectateURL("host:1", "g"); got != "http://host:1/?game=g" {
		t.Fatalf("unexpected URL %s", got)
	}
}
