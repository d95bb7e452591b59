package normalize

import (
	"regexp"
	"strings"

	"github.com/roach88/parcelsync/internal/parse"
	"github.com/roach88/parcelsync/internal/records"
)

// "ATTN ", "ATTN: ", "ATTENTION ", "ATTENTION: "
var attnPrefix = regexp.MustCompile(`(?i)^ATT(?:N|ENTION):?\s*`)

// MailingFromTax builds the canonical mailing value from the tax page
// fragments. The tax page renders exactly three text lines: the delivery
// line, the city/state line, and the zip. Zero lines means the county has
// no mailing address on file. Any other count fails with
// *MalformedAddressError.
func MailingFromTax(fragments []parse.Fragment) (*records.Mailing, error) {
	lines := cleanedLines(fragments)
	switch len(lines) {
	case 0:
		return nil, nil
	case 3:
		last, err := parse.LastLineFromParts(lines[1], lines[2])
		if err != nil {
			return nil, err
		}
		return &records.Mailing{Delivery: parse.DeliveryLine(lines[0]), Last: last}, nil
	default:
		return nil, &MalformedAddressError{Source: "tax", Fragments: lines}
	}
}

// MailingFromGeneral builds the canonical mailing value from the general
// page fragments. Two text lines are (delivery, city/state/zip); three are
// (attention, delivery, city/state/zip) with the ATTN prefix token stripped
// from the attention line. Zero lines means no mailing address. Any other
// count fails with *MalformedAddressError.
func MailingFromGeneral(fragments []parse.Fragment) (*records.Mailing, error) {
	lines := cleanedLines(fragments)
	switch len(lines) {
	case 0:
		return nil, nil
	case 2:
		last, err := parse.LastLine(lines[1])
		if err != nil {
			return nil, err
		}
		return &records.Mailing{Delivery: parse.DeliveryLine(lines[0]), Last: last}, nil
	case 3:
		last, err := parse.LastLine(lines[2])
		if err != nil {
			return nil, err
		}
		delivery := parse.DeliveryLine(lines[1])
		delivery.Attn = attnPrefix.ReplaceAllString(lines[0], "")
		return &records.Mailing{Delivery: delivery, Last: last}, nil
	default:
		return nil, &MalformedAddressError{Source: "general", Fragments: lines}
	}
}

// cleanedLines keeps the text fragments, NFC-normalized, trimmed, and with
// internal whitespace runs collapsed.
func cleanedLines(fragments []parse.Fragment) []string {
	lines := textFragments(fragments)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(collapseWhitespace(line))
	}
	return lines
}
