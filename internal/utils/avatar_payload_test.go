package utils

import (
	"encoding/base64"
	"testing"
)

func TestDecodeMediaPayload(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("DataURL", func(t *testing.T) {
		data, ext, err := DecodeMediaPayload("data:image/png;base64," + encoded)
		if err != nil {
			t.Fatalf("DecodeMediaPayload: %v", err)
		}
		if len(data) != len(raw) {
			t.Errorf("expected %d bytes, got %d", len(raw), len(data))
		}
		if ext != "png" {
			t.Errorf("expected png extension, got %s", ext)
		}
	})

	t.Run("BareBase64DefaultsToJpeg", func(t *testing.T) {
		_, ext, err := DecodeMediaPayload(encoded)
		if err != nil {
			t.Fatalf("DecodeMediaPayload: %v", err)
		}
		if ext != "jpg" {
			t.Errorf("expected jpg extension, got %s", ext)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, _, err := DecodeMediaPayload("   "); err == nil {
			t.Error("expected error for blank payload")
		}
	})

	t.Run("InvalidBase64", func(t *testing.T) {
		if _, _, err := DecodeMediaPayload("data:image/png;base64,@@@"); err == nil {
			t.Error("expected error for invalid base64")
		}
	})
}

func TestExtensionFromMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", "png"},
		{"image/jpeg", "jpg"},
		{"IMAGE/WEBP", "webp"},
		{"image/png; charset=binary", "png"},
		{"application/pdf", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtensionFromMime(tt.mime); got != tt.want {
			t.Errorf("ExtensionFromMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
