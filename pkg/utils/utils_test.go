package utils

import (
	"strings"
	"testing"
	"time"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp returned error: %v", err)
	}
	if len(id) != 26 {
		t.Errorf("expected 26-character ULID, got %q (%d chars)", id, len(id))
	}

	other, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp returned error: %v", err)
	}
	if id == other {
		t.Error("two generated ULIDs should not collide")
	}
}

func TestStripDataURIPrefix(t *testing.T) {
	u := New()

	tests := []struct {
		name     string
		input    string
		wantData string
		wantMIME string
	}{
		{
			name:     "jpeg data URI",
			input:    "data:image/jpeg;base64,AAAA",
			wantData: "AAAA",
			wantMIME: "image/jpeg",
		},
		{
			name:     "png data URI",
			input:    "data:image/png;base64,iVBOR",
			wantData: "iVBOR",
			wantMIME: "image/png",
		},
		{
			name:     "bare base64 defaults to jpeg",
			input:    "AAAA",
			wantData: "AAAA",
			wantMIME: "image/jpeg",
		},
		{
			name:     "data prefix without comma left untouched",
			input:    "data:image/jpeg;base64",
			wantData: "data:image/jpeg;base64",
			wantMIME: "image/jpeg",
		},
		{
			name:     "non-image data URI keeps default MIME",
			input:    "data:text/plain;base64,AAAA",
			wantData: "AAAA",
			wantMIME: "image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mimeType := u.StripDataURIPrefix(tt.input)
			if data != tt.wantData {
				t.Errorf("data = %q, want %q", data, tt.wantData)
			}
			if mimeType != tt.wantMIME {
				t.Errorf("mime = %q, want %q", mimeType, tt.wantMIME)
			}
			if strings.Contains(data, "data:image") && tt.name != "data prefix without comma left untouched" {
				t.Errorf("prefix not stripped from %q", data)
			}
		})
	}
}
