package extract

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akurra/studybuddy/internal/domain/commonModels"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		source string
		want   commonModels.SourceKind
	}{
		{"https://example.com/page", commonModels.SourceWeb},
		{"http://example.com/notes.txt", commonModels.SourceWeb},
		{"/tmp/uploads/lecture.pdf", commonModels.SourcePDF},
		{"/tmp/uploads/LECTURE.PDF", commonModels.SourcePDF},
		{"scan.png", commonModels.SourceImage},
		{"photo.jpeg", commonModels.SourceImage},
		{"essay.docx", commonModels.SourceDoc},
		{"notes.odt", commonModels.SourceDoc},
		{"notes.txt", commonModels.SourceUnsupported},
		{"archive.zip", commonModels.SourceUnsupported},
		{"no-extension", commonModels.SourceUnsupported},
	}

	for _, tt := range tests {
		if got := KindOf(tt.source); got != tt.want {
			t.Errorf("KindOf(%q) got %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := New(http.DefaultClient)

	result, err := e.Extract("notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got err %v, want ErrUnsupportedFormat", err)
	}
	if result.Text != "" {
		t.Errorf("unsupported source produced text %q", result.Text)
	}
}

func TestExtract_WebPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("fetch sent no User-Agent")
		}
		w.Write([]byte(`<html><head><style>p{color:red}</style></head><body>
			<script>var hidden = "should not appear";</script>
			<p>First paragraph.</p>
			<div>div text is skipped</div>
			<p>  Second paragraph.  </p>
		</body></html>`))
	}))
	defer srv.Close()

	e := New(srv.Client())
	result, err := e.Extract(srv.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Kind != commonModels.SourceWeb {
		t.Errorf("Kind got %v, want SourceWeb", result.Kind)
	}
	want := "First paragraph.\nSecond paragraph."
	if result.Text != want {
		t.Errorf("Text got %q, want %q", result.Text, want)
	}
}

func TestExtract_WebFetchFailureYieldsEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() //server is down before the fetch

	e := New(http.DefaultClient)
	result, err := e.Extract(srv.URL)
	if err != nil {
		t.Fatalf("network failure should be swallowed, got err %v", err)
	}
	if result.Text != "" {
		t.Errorf("failed fetch produced text %q", result.Text)
	}
	if result.Kind != commonModels.SourceWeb {
		t.Errorf("Kind got %v, want SourceWeb", result.Kind)
	}
}

func TestExtract_MissingPDFYieldsEmptyText(t *testing.T) {
	e := New(http.DefaultClient)
	result, err := e.Extract("/nonexistent/path/ghost.pdf")
	if err != nil {
		t.Fatalf("missing file should be swallowed, got err %v", err)
	}
	if result.Text != "" {
		t.Errorf("missing pdf produced text %q", result.Text)
	}
}
