package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Owner builds the canonical owner value from the raw owner fragments.
//
// Markup fragments are discarded. Each remaining text fragment is one listed
// owner; their trimmed names are joined with " & " and MultiEntity is set
// when more than one was present. If collapsing internal whitespace runs
// changes the joined name, the cell was malformed (a wrapped multi-line
// entry) and MultiEntity is forced on as well.
func Owner(fragments []parse.Fragment) records.Owner {
	names := textFragments(fragments)
	multi := len(names) > 1

	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	joined := strings.Join(names, " & ")
	clean := collapseWhitespace(joined)
	if clean != joined {
		multi = true
	}
	return records.Owner{Name: clean, MultiEntity: multi}
}

// textFragments keeps the literal text fragments, NFC-normalized so that
// visually identical county text compares equal across syncs.
func textFragments(fragments []parse.Fragment) []string {
	var texts []string
	for _, f := range fragments {
		if f.IsText {
			texts = append(texts, norm.NFC.String(f.Raw))
		}
	}
	return texts
}

func collapseWhitespace(s string) string {
	return whitespaceRuns.ReplaceAllString(s, " ")
}
