package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "arabic content",
			content:  "قفا نبك من ذكرى حبيب ومنزل",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestVerse_ContentKey(t *testing.T) {
	a := Verse{PoemId: 1, Text: "بسقط اللوى بين الدخول فحومل"}
	b := Verse{PoemId: 1, Text: "بسقط اللوى بين الدخول فحومل", VerseNo: 7}
	c := Verse{PoemId: 2, Text: "بسقط اللوى بين الدخول فحومل"}

	if a.ContentKey() != b.ContentKey() {
		t.Errorf("ContentKey() differs for same poem and text")
	}
	if a.ContentKey() == c.ContentKey() {
		t.Errorf("ContentKey() should differ across poems")
	}
}
