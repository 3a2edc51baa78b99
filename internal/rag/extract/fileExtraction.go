package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/otiai10/gosseract/v2"
)

// extractPDF concatenates per-page text with newlines. A page that
// yields nothing contributes an empty line; a failure mid-document
// keeps whatever accumulated before it.
func (e *Extractor) extractPDF(path string) string {
	f, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn("failed opening pdf", "path", path, "error", err)
		return ""
	}

	var pages []string
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			e.logger.Warn("page extraction failed, keeping accumulated text", "page", i, "error", err)
			break
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n")
}

func (e *Extractor) extractImage(path string) string {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		e.logger.Warn("ocr could not read image", "path", path, "error", err)
		return ""
	}
	text, err := client.Text()
	if err != nil {
		e.logger.Warn("ocr failed", "path", path, "error", err)
		return ""
	}
	return text
}

// extractDoc reads .docx, .odt and .rtf files.
func (e *Extractor) extractDoc(path string) string {
	text, err := cat.File(path)
	if err != nil {
		e.logger.Warn("doc extraction failed", "path", path, "error", err)
		return ""
	}
	return text
}

// protectExtract runs a page extraction with a timeout; the pdf library
// can hang on malformed content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PDFPageTimeout):
		return "", errors.New("page extraction timeout")
	}
}
