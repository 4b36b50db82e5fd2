package preview

import (
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>City Council Approves New Transit Plan</title>
<meta property="og:site_name" content="Civic Times">
<meta property="og:image" content="https://example.com/transit.jpg">
</head>
<body>
<article>
<h1>City Council Approves New Transit Plan</h1>
<p>The city council voted on Tuesday to approve a new transit expansion
plan that will add three bus rapid transit lines over the next five
years. Supporters argued the plan addresses long-standing service gaps
in the city's outer neighborhoods.</p>
<p>Opponents raised concerns about the funding mechanism, which relies
on a combination of federal grants and a modest increase in the local
sales tax. The measure passed seven votes to two after nearly four
hours of public comment.</p>
<p>Construction on the first line is expected to begin next spring,
with service starting roughly eighteen months later. The transit
authority will hold a series of neighborhood meetings to finalize stop
locations.</p>
</article>
</body>
</html>`

func TestExtractPageFromArticle(t *testing.T) {
	page, err := ExtractPage(articleHTML, "https://example.com/news/transit-plan")
	if err != nil {
		t.Fatalf("unexpected extract error: %v", err)
	}
	if page.Title == "" {
		t.Fatalf("expected a title, got empty")
	}
	if !strings.Contains(page.Title, "Transit Plan") {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if page.Excerpt == "" {
		t.Fatalf("expected a non-empty excerpt")
	}
	if len([]rune(page.Excerpt)) > maxExcerptRunes {
		t.Fatalf("excerpt exceeds cap: %d runes", len([]rune(page.Excerpt)))
	}
}

func TestExtractPageRejectsEmptyDocument(t *testing.T) {
	_, err := ExtractPage("<html><body></body></html>", "https://example.com/empty")
	if err == nil {
		t.Fatalf("expected error for contentless document")
	}
}
