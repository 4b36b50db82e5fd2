package preview

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// maxExcerptRunes caps the excerpt stored on a link preview.
const maxExcerptRunes = 280

// ExtractedPage is the preview-relevant metadata pulled from a rendered
// document.
type ExtractedPage struct {
	Title    string
	SiteName string
	Excerpt  string
	ImageURL string
}

// ExtractPage runs the extraction strategies in order until one yields a
// title or text. Readability is the main extractor; trafilatura and
// goose cover the documents it chokes on.
func ExtractPage(htmlStr, pageURL string) (*ExtractedPage, error) {
	if page, err := extractWithReadability(htmlStr); err == nil && page.usable() {
		return page, nil
	}
	if page, err := extractWithTrafilatura(htmlStr); err == nil && page.usable() {
		return page, nil
	}
	if page, err := extractWithGoose(htmlStr, pageURL); err == nil && page.usable() {
		return page, nil
	}
	return nil, fmt.Errorf("no extractor produced content for %s", pageURL)
}

func (p *ExtractedPage) usable() bool {
	return p != nil && (p.Title != "" || p.Excerpt != "")
}

func extractWithReadability(htmlStr string) (*ExtractedPage, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return nil, err
	}
	excerpt := article.Excerpt
	if excerpt == "" {
		excerpt = article.TextContent
	}
	return &ExtractedPage{
		Title:    article.Title,
		SiteName: article.SiteName,
		Excerpt:  TruncateExcerpt(excerpt),
		ImageURL: article.Image,
	}, nil
}

func extractWithTrafilatura(htmlStr string) (*ExtractedPage, error) {
	opts := trafilatura.Options{
		IncludeImages: true,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return nil, err
	}
	return &ExtractedPage{
		Title:    article.Metadata.Title,
		SiteName: article.Metadata.Sitename,
		Excerpt:  TruncateExcerpt(article.ContentText),
		ImageURL: article.Metadata.Image,
	}, nil
}

func extractWithGoose(htmlStr, pageURL string) (*ExtractedPage, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, pageURL)
	if err != nil {
		return nil, err
	}
	return &ExtractedPage{
		Title:    article.Title,
		SiteName: article.Domain,
		Excerpt:  TruncateExcerpt(article.CleanedText),
		ImageURL: article.TopImage,
	}, nil
}

// TruncateExcerpt collapses whitespace and truncates to the excerpt cap
// on a rune boundary.
func TruncateExcerpt(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	joined := strings.Join(fields, " ")
	rs := []rune(joined)
	if len(rs) <= maxExcerptRunes {
		return joined
	}
	return string(rs[:maxExcerptRunes])
}
