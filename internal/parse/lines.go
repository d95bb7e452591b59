package parse

import (
	"regexp"
	"strings"

	"github.com/roach88/parcelsync/internal/records"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// "PO BOX 123", "P.O. Box 123", "P O BOX 123A"
	poBoxRe = regexp.MustCompile(`(?i)^P\.?\s*O\.?\s*BOX\s+(\S+)$`)

	// Leading building number: digits, optionally extended ("123A", "123-125").
	bldgNumberRe = regexp.MustCompile(`^(\d[\w-]*)\s+(.+)$`)

	// Trailing secondary/unit designator.
	secondaryRe = regexp.MustCompile(`(?i)\s+((?:APT|STE|SUITE|UNIT|RM|FL|#)\s*\S*)$`)

	// "SPRINGFIELD, IL 62701" or "SPRINGFIELD IL 62701-1234"
	combinedLastRe = regexp.MustCompile(`^(.+?),?\s+([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)$`)

	// "SPRINGFIELD, IL" or "SPRINGFIELD IL"
	cityStateRe = regexp.MustCompile(`^(.+?),?\s+([A-Za-z]{2})$`)

	zipRe = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)
)

// DeliveryLine splits one delivery address line into its canonical parts.
//
//	"PO BOX 42"            -> {PoBox: true, Number: "42", Street: "PO BOX"}
//	"123 MAIN ST"          -> {Number: "123", Street: "MAIN ST"}
//	"123 MAIN ST APT 4"    -> {Number: "123", Street: "MAIN ST", Secondary: "APT 4"}
//
// A line with no leading building number keeps the whole remainder as the
// street name; county data contains rural routes and named buildings that
// have no number.
func DeliveryLine(s string) records.DeliveryLine {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	if m := poBoxRe.FindStringSubmatch(s); m != nil {
		return records.DeliveryLine{PoBox: true, Number: m[1], Street: "PO BOX"}
	}

	var secondary string
	if loc := secondaryRe.FindStringSubmatchIndex(s); loc != nil {
		secondary = s[loc[2]:loc[3]]
		s = s[:loc[0]]
	}

	if m := bldgNumberRe.FindStringSubmatch(s); m != nil {
		return records.DeliveryLine{Number: m[1], Street: m[2], Secondary: secondary}
	}
	return records.DeliveryLine{Street: s, Secondary: secondary}
}

// CityState splits a "city, state" line into its parts.
func CityState(s string) (city, state string, err error) {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	m := cityStateRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", lineError("unrecognized city/state line %q", s)
	}
	return m[1], strings.ToUpper(m[2]), nil
}

// LastLineFromParts builds a LastLine from separate city/state and zip
// fragments, the shape the tax page uses.
func LastLineFromParts(cityState, zip string) (records.LastLine, error) {
	city, state, err := CityState(cityState)
	if err != nil {
		return records.LastLine{}, err
	}
	zip = strings.TrimSpace(zip)
	if !zipRe.MatchString(zip) {
		return records.LastLine{}, lineError("unrecognized zip %q", zip)
	}
	return records.LastLine{City: city, State: state, Zip: zip}, nil
}

// LastLine parses the combined "city, state zip" shape the general page uses.
func LastLine(s string) (records.LastLine, error) {
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	m := combinedLastRe.FindStringSubmatch(s)
	if m == nil {
		return records.LastLine{}, lineError("unrecognized last line %q", s)
	}
	return records.LastLine{City: m[1], State: strings.ToUpper(m[2]), Zip: m[3]}, nil
}
