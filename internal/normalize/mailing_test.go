package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
)

func textFrags(lines ...string) []parse.Fragment {
	frags := make([]parse.Fragment, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 {
			frags = append(frags, parse.MarkupFragment("br"))
		}
		frags = append(frags, parse.TextFragment(line))
	}
	return frags
}

func TestMailingFromTax_ThreeFragments(t *testing.T) {
	got, err := MailingFromTax(textFrags("123 Main St", "Springfield, IL", "62701"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, records.DeliveryLine{Number: "123", Street: "Main St"}, got.Delivery)
	assert.Equal(t, records.LastLine{City: "Springfield", State: "IL", Zip: "62701"}, got.Last)
}

func TestMailingFromTax_NoFragments(t *testing.T) {
	got, err := MailingFromTax(nil)
	require.NoError(t, err)
	assert.Nil(t, got, "no fragments means no mailing address on file")
}

func TestMailingFromTax_TwoFragmentsIsFatal(t *testing.T) {
	_, err := MailingFromTax(textFrags("123 Main St", "Springfield, IL"))
	require.Error(t, err)
	assert.True(t, IsMalformedAddress(err))

	var me *MalformedAddressError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "tax", me.Source)
	assert.Equal(t, []string{"123 Main St", "Springfield, IL"}, me.Fragments)
}

func TestMailingFromGeneral_TwoFragments(t *testing.T) {
	got, err := MailingFromGeneral(textFrags("123 MAIN ST APT 4", "SPRINGFIELD, IL 62701"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, records.DeliveryLine{Number: "123", Street: "MAIN ST", Secondary: "APT 4"}, got.Delivery)
	assert.Equal(t, records.LastLine{City: "SPRINGFIELD", State: "IL", Zip: "62701"}, got.Last)
}

func TestMailingFromGeneral_ThreeFragmentsWithAttention(t *testing.T) {
	got, err := MailingFromGeneral(textFrags("ATTN: TAX DEPT", "500 OAK AVE STE 200", "COLUMBUS, OH 43216"))
	require.NoError(t, err)
	require.NotNil(t, got)

	want := records.DeliveryLine{
		Attn:      "TAX DEPT",
		Number:    "500",
		Street:    "OAK AVE",
		Secondary: "STE 200",
	}
	assert.Equal(t, want, got.Delivery)
}

func TestMailingFromGeneral_AttentionPrefixVariants(t *testing.T) {
	for _, prefix := range []string{"ATTN ", "ATTN: ", "ATTENTION ", "ATTENTION: ", "attn: "} {
		got, err := MailingFromGeneral(textFrags(prefix+"TAX DEPT", "123 MAIN ST", "SPRINGFIELD, IL 62701"))
		require.NoError(t, err, "prefix %q", prefix)
		assert.Equal(t, "TAX DEPT", got.Delivery.Attn, "prefix %q", prefix)
	}
}

func TestMailingFromGeneral_NoFragments(t *testing.T) {
	got, err := MailingFromGeneral(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMailingFromGeneral_OneFragmentIsFatal(t *testing.T) {
	_, err := MailingFromGeneral(textFrags("123 MAIN ST"))
	require.Error(t, err)
	assert.True(t, IsMalformedAddress(err))
}

func TestMailingFromGeneral_BadLastLinePropagatesParseError(t *testing.T) {
	_, err := MailingFromGeneral(textFrags("123 MAIN ST", "NO ZIP HERE"))
	require.Error(t, err)
	assert.True(t, parse.IsParseError(err))
	assert.False(t, IsMalformedAddress(err))
}

func TestMailingEquality_RoundTrip(t *testing.T) {
	frags := textFrags("PO BOX 42", "SPRINGFIELD, IL", "62701")
	first, err := MailingFromTax(frags)
	require.NoError(t, err)
	second, err := MailingFromTax(frags)
	require.NoError(t, err)

	assert.True(t, records.MailingEqual(first, second), "repeated normalization must be value-equal")
}
