package markdown

import "regexp"

// wikiLinkPattern matches the shortest text between a pair of double brackets.
var wikiLinkPattern = regexp.MustCompile(`\[\[(.*?)\]\]`)

// RewriteWikiLinks replaces every [[Name]] token with <a href="/Name">Name</a>.
// Name is inserted verbatim in both places, matches are processed left to
// right, and text outside the tokens is left untouched.
func RewriteWikiLinks(html []byte) []byte {
	return wikiLinkPattern.ReplaceAll(html, []byte(`<a href="/${1}">${1}</a>`))
}
