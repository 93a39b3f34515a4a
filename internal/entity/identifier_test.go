package entity

import "testing"

func TestParseAccountRef(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantColumn string
		wantID     uint
		wantUUID   string
	}{
		{
			name:       "NumericID",
			input:      "42",
			wantColumn: "id",
			wantID:     42,
		},
		{
			name:       "NumericIDWithSpaces",
			input:      "  7  ",
			wantColumn: "id",
			wantID:     7,
		},
		{
			name:       "UUID",
			input:      "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
			wantColumn: "uuid",
			wantUUID:   "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		},
		{
			name:       "MixedToken",
			input:      "12ab34",
			wantColumn: "uuid",
			wantUUID:   "12ab34",
		},
		{
			name:       "ZeroFallsBackToToken",
			input:      "0",
			wantColumn: "uuid",
			wantUUID:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseAccountRef(tt.input)
			if ref.Column() != tt.wantColumn {
				t.Errorf("expected column %s, got %s", tt.wantColumn, ref.Column())
			}
			if ref.ID != tt.wantID {
				t.Errorf("expected id %d, got %d", tt.wantID, ref.ID)
			}
			if ref.UUID != tt.wantUUID {
				t.Errorf("expected uuid %q, got %q", tt.wantUUID, ref.UUID)
			}
		})
	}
}

func TestParseAccountRefBlank(t *testing.T) {
	ref := ParseAccountRef("   ")
	if !ref.IsZero() {
		t.Fatalf("expected zero ref for blank input, got %+v", ref)
	}
}

func TestRefFromID(t *testing.T) {
	ref := RefFromID(13)
	if ref.Column() != "id" {
		t.Fatalf("expected id column, got %s", ref.Column())
	}
	if ref.Value() != uint(13) {
		t.Fatalf("expected value 13, got %v", ref.Value())
	}
	if ref.String() != "13" {
		t.Fatalf("expected string 13, got %s", ref.String())
	}
}
