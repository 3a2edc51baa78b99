package chunker

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSplit_WordWindows(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		want      []string
	}{
		{
			name:      "Five_Words_Size_Two",
			text:      "a b c d e",
			chunkSize: 2,
			want:      []string{"a b", "c d", "e"},
		},
		{
			name:      "Exact_Multiple",
			text:      "one two three four",
			chunkSize: 2,
			want:      []string{"one two", "three four"},
		},
		{
			name:      "Chunk_Larger_Than_Text",
			text:      "short text",
			chunkSize: 50,
			want:      []string{"short text"},
		},
		{
			name:      "Collapses_Whitespace",
			text:      "  a\t\tb \n c  ",
			chunkSize: 2,
			want:      []string{"a b", "c"},
		},
		{
			name:      "Empty_Text",
			text:      "",
			chunkSize: 3,
			want:      []string{},
		},
		{
			name:      "Whitespace_Only",
			text:      " \n\t ",
			chunkSize: 3,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.text, tt.chunkSize)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplit_BadChunkSize(t *testing.T) {
	for _, size := range []int{0, -1, -200} {
		if _, err := Split("some text", size); !errors.Is(err, ErrBadChunkSize) {
			t.Errorf("Split with size %d: got err %v, want ErrBadChunkSize", size, err)
		}
	}
}

func TestSplit_ReassemblesToOriginalWordSequence(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog again and again"
	for _, size := range []int{1, 3, 5, 200} {
		chunks, err := Split(text, size)
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		rejoined := strings.Join(chunks, " ")
		if rejoined != text {
			t.Errorf("size %d: rejoined %q, want %q", size, rejoined, text)
		}
	}
}
