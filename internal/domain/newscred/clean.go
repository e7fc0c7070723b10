package newscred

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// clean normalizes raw article text for the vectorizer: markup is stripped,
// URLs removed, everything lowercased and whitespace collapsed. Articles
// scraped from news sites and social feeds routinely carry both.
func clean(raw string) string {
	text := raw
	if strings.ContainsAny(text, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}
	text = urlPattern.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
