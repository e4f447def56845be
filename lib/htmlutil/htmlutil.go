package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText replaces non-printable runes with spaces, trims the ends and
// collapses runs of inner whitespace to a single space.
func CleanText(s string) string {
	var printable strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) {
			printable.WriteRune(c)
		} else {
			printable.WriteRune(' ')
		}
	}
	out := strings.Trim(printable.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// ChildText returns the cleaned text of the idx-th element child of the
// selection. The second return is false when no such child exists.
func ChildText(sel *goquery.Selection, idx int) (string, bool) {
	if idx < 0 {
		return "", false
	}
	child := sel.Children().Eq(idx)
	if child.Length() == 0 {
		return "", false
	}
	return CleanText(child.Text()), true
}
