package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse reads hOCR data and returns its pages with their word boxes.
// Latin-1 encoded input is transparently decoded to UTF-8.
func Parse(data []byte) ([]Page, error) {
	if enc := declaredCharset(string(data)); enc != "" && enc != "utf-8" {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", enc, err)
		}
		data = decoded
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse hocr html: %w", err)
	}

	var pages []Page
	walk(doc, func(n *html.Node) bool {
		if !hasClass(n, "ocr_page") {
			return true
		}
		page := Page{
			ID:     attr(n, "id"),
			Number: len(pages) + 1,
		}
		if box, ok := titleBBox(attr(n, "title")); ok {
			page.BBox = box
		}
		if no, ok := titleProperty(attr(n, "title"), "ppageno"); ok {
			if v, err := strconv.Atoi(no); err == nil {
				page.Number = v + 1
			}
		}
		collectWords(n, &page)
		pages = append(pages, page)
		return false // words already collected, do not descend again
	})

	if len(pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return pages, nil
}

// collectWords gathers every ocrx_word below the page node regardless of the
// area/paragraph/line nesting between them.
func collectWords(pageNode *html.Node, page *Page) {
	walk(pageNode, func(n *html.Node) bool {
		if n == pageNode || !hasClass(n, "ocrx_word") {
			return true
		}
		word := Word{Text: strings.TrimSpace(nodeText(n))}
		if word.Text == "" {
			return false
		}
		if box, ok := titleBBox(attr(n, "title")); ok {
			word.BBox = box
		}
		if conf, ok := titleProperty(attr(n, "title"), "x_wconf"); ok {
			word.Confidence, _ = strconv.ParseFloat(conf, 64)
		}
		page.Words = append(page.Words, word)
		return false
	})
}

// walk visits nodes depth-first; fn returning false prunes the subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// titleBBox extracts the "bbox x1 y1 x2 y2" property from a title attribute.
func titleBBox(title string) (BoundingBox, bool) {
	val, ok := titleProperty(title, "bbox")
	if !ok {
		return BoundingBox{}, false
	}
	fields := strings.Fields(val)
	if len(fields) < 4 {
		return BoundingBox{}, false
	}
	var coords [4]float64
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return BoundingBox{}, false
		}
		coords[i] = v
	}
	return BoundingBox{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}, true
}

// titleProperty finds a named property in a semicolon-separated hOCR title
// attribute and returns its value portion.
func titleProperty(title, name string) (string, bool) {
	for _, part := range strings.Split(title, ";") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, name+" "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// declaredCharset pulls the charset out of a meta tag, if any.
func declaredCharset(content string) string {
	i := strings.Index(content, "charset=")
	if i < 0 {
		return ""
	}
	rest := content[i+len("charset="):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' '
	})
	if end < 0 {
		end = len(rest)
	}
	return strings.ToLower(rest[:end])
}
