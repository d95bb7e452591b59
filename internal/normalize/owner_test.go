package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
)

func TestOwner_TwoFragments(t *testing.T) {
	got := Owner([]parse.Fragment{
		parse.TextFragment("Jane Smith  "),
		parse.TextFragment("John Smith"),
	})
	assert.Equal(t, records.Owner{Name: "Jane Smith & John Smith", MultiEntity: true}, got)
}

func TestOwner_SingleFragment(t *testing.T) {
	got := Owner([]parse.Fragment{parse.TextFragment("ACME CORP")})
	assert.Equal(t, records.Owner{Name: "ACME CORP", MultiEntity: false}, got)
}

func TestOwner_WhitespaceCollapseForcesMultiEntity(t *testing.T) {
	// A single fragment with internal whitespace runs is treated as a
	// malformed multi-line cell.
	got := Owner([]parse.Fragment{parse.TextFragment("  Acme   Corp ")})
	assert.Equal(t, records.Owner{Name: "Acme Corp", MultiEntity: true}, got)
}

func TestOwner_DiscardsMarkupFragments(t *testing.T) {
	got := Owner([]parse.Fragment{
		parse.TextFragment("SMITH JANE"),
		parse.MarkupFragment("br"),
		parse.TextFragment("SMITH JOHN"),
	})
	assert.Equal(t, records.Owner{Name: "SMITH JANE & SMITH JOHN", MultiEntity: true}, got)
}

func TestOwner_StableAcrossRepeatedRuns(t *testing.T) {
	frags := []parse.Fragment{
		parse.TextFragment("SMITH JANE "),
		parse.MarkupFragment("br"),
		parse.TextFragment(" SMITH JOHN"),
	}
	first := Owner(frags)
	second := Owner(frags)
	assert.Equal(t, first, second, "normalization must be value-stable across syncs")
}

func TestOwner_Empty(t *testing.T) {
	got := Owner(nil)
	assert.Equal(t, records.Owner{Name: "", MultiEntity: false}, got)
}
