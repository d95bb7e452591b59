package parse

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Fragment is one child node of a scraped marker element. Text fragments
// carry the literal text of a text node; markup fragments record the tag
// name of an element node (typically <br>) and exist only so the normalizer
// can see and discard them, mirroring the raw page structure.
type Fragment struct {
	IsText bool
	Raw    string
}

// TextFragment builds a literal-text fragment. Exported for tests and for
// callers that feed the normalizer directly.
func TextFragment(s string) Fragment {
	return Fragment{IsText: true, Raw: s}
}

// MarkupFragment builds a markup-noise fragment for the given tag name.
func MarkupFragment(tag string) Fragment {
	return Fragment{IsText: false, Raw: "<" + tag + "/>"}
}

// Marker element ids on the county pages. The general assessment page and
// the tax/mortgage page are rendered by different county applications and
// use different ids for the same concepts.
const (
	generalOwnerID   = "lblOwnerName"
	generalMailingID = "lblMailingAddress"
	taxOwnerID       = "lblTaxpayerName"
	taxMailingID     = "lblTaxpayerAddress"
)

// GeneralPage extracts the raw owner and mailing fragments from a general
// assessment page. Fails with *Error when either marker element is absent.
func GeneralPage(content []byte) (owner, mailing []Fragment, err error) {
	return pageFragments("general", content, generalOwnerID, generalMailingID)
}

// TaxPage extracts the raw owner and mailing fragments from a tax/mortgage
// page. Fails with *Error when either marker element is absent.
func TaxPage(content []byte) (owner, mailing []Fragment, err error) {
	return pageFragments("tax", content, taxOwnerID, taxMailingID)
}

func pageFragments(page string, content []byte, ownerID, mailingID string) (owner, mailing []Fragment, err error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, nil, pageError(page, "invalid html: %v", err)
	}

	ownerNode := findByID(doc, ownerID)
	if ownerNode == nil {
		return nil, nil, pageError(page, "missing element #%s", ownerID)
	}
	mailingNode := findByID(doc, mailingID)
	if mailingNode == nil {
		return nil, nil, pageError(page, "missing element #%s", mailingID)
	}

	return childFragments(ownerNode), childFragments(mailingNode), nil
}

// childFragments converts the direct children of a marker element into
// fragments. Whitespace-only text nodes are formatting artifacts of the
// county templates and are dropped so they cannot inflate fragment counts.
func childFragments(n *html.Node) []Fragment {
	var frags []Fragment
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			frags = append(frags, TextFragment(c.Data))
		case html.ElementNode:
			frags = append(frags, MarkupFragment(c.Data))
		}
	}
	return frags
}

// findByID walks the node tree depth-first for an element with the given id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
