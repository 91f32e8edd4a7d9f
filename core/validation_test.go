package core

import (
	"errors"
	"testing"
)

func TestValidateVerse(t *testing.T) {
	tests := []struct {
		name    string
		verse   *Verse
		wantErr error
	}{
		{
			name:    "valid verse",
			verse:   &Verse{Id: 1, PoemId: 1, VerseNo: 1, Text: "قفا نبك"},
			wantErr: nil,
		},
		{
			name:    "valid verse with empty text",
			verse:   &Verse{PoemId: 1, VerseNo: 2},
			wantErr: nil,
		},
		{
			name:    "nil verse",
			verse:   nil,
			wantErr: ErrInvalidVerse,
		},
		{
			name:    "missing poem",
			verse:   &Verse{VerseNo: 1, Text: "قفا نبك"},
			wantErr: ErrMissingPoem,
		},
		{
			name:    "zero verse number",
			verse:   &Verse{PoemId: 3, Text: "قفا نبك"},
			wantErr: ErrInvalidVerseNo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVerse(tt.verse)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateVerse() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateVerse() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateVerse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePoem(t *testing.T) {
	tests := []struct {
		name    string
		poem    *Poem
		wantErr error
	}{
		{"valid poem", &Poem{Title: "المعلقة"}, nil},
		{"nil poem", nil, ErrInvalidPoem},
		{"blank title", &Poem{Title: "   "}, ErrEmptyPoemTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoem(tt.poem)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePoem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePoem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
