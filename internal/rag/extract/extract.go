package extract

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

// ErrUnsupportedFormat is distinct from an empty extraction: callers
// must branch on it (reject the upload) instead of proceeding with
// empty content.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Result carries the normalized text plus how the source was
// classified. Kind is decided once and never re-derived downstream.
type Result struct {
	Text string
	Kind commonModels.SourceKind
}

type Extractor struct {
	httpClient *http.Client
	logger     *logger_i.Logger
}

func New(httpClient *http.Client) *Extractor {
	return &Extractor{
		httpClient: httpClient,
		logger:     logger_i.NewLogger("Extractor"),
	}
}

// KindOf classifies a source identifier by URL scheme or file extension.
func KindOf(source string) commonModels.SourceKind {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return commonModels.SourceWeb
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".pdf":
		return commonModels.SourcePDF
	case ".png", ".jpg", ".jpeg":
		return commonModels.SourceImage
	case ".docx", ".odt", ".rtf":
		return commonModels.SourceDoc
	default:
		return commonModels.SourceUnsupported
	}
}

// Extract normalizes an arbitrary source into plain text. Network,
// parse and OCR failures are swallowed into an empty Result - the
// best-effort policy of the pipeline - so downstream stages treat
// empty text as "nothing extracted", never as an error. The only error
// returned is ErrUnsupportedFormat.
func (e *Extractor) Extract(source string) (Result, error) {
	kind := KindOf(source)

	switch kind {
	case commonModels.SourceWeb:
		return Result{Text: e.extractWebPage(source), Kind: kind}, nil
	case commonModels.SourcePDF:
		return Result{Text: e.extractPDF(source), Kind: kind}, nil
	case commonModels.SourceImage:
		return Result{Text: e.extractImage(source), Kind: kind}, nil
	case commonModels.SourceDoc:
		return Result{Text: e.extractDoc(source), Kind: kind}, nil
	default:
		return Result{Kind: commonModels.SourceUnsupported}, ErrUnsupportedFormat
	}
}

// extractWebPage fetches the page and concatenates the visible text of
// paragraph elements in document order, newline separated. Script,
// style and noscript subtrees are dropped first.
func (e *Extractor) extractWebPage(url string) string {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		e.logger.Warn("building fetch request failed", "url", url, "error", err)
		return ""
	}
	req.Header.Set("User-Agent", config.ExtractUserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Warn("web fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.logger.Warn("web parse failed", "url", url, "error", err)
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n")
}
