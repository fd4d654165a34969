// Package celex models CELEX identifiers, the document numbers used by
// the Publications Office, and derives them from the human "slash
// notation" (e.g. "2019/947") found in citations.
package celex

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sector is the leading CELEX sector digit.
// See https://eur-lex.europa.eu/content/tools/TableOfSectors/types_of_documents_in_eurlex.html
type Sector string

const (
	SectorTreaties                 Sector = "1"
	SectorInternationalAgreements  Sector = "2"
	SectorLegislation              Sector = "3"
	SectorComplementaryLegislation Sector = "4"
	SectorPreparatoryActs          Sector = "5"
	SectorCaseLaw                  Sector = "6"
)

// TypeCode is the document-type indicator within a sector.
type TypeCode string

const (
	TypeDirective  TypeCode = "L"
	TypeRegulation TypeCode = "R"
	TypeEEA        TypeCode = "E"
)

// allSectors and allTypeCodes are the fan-out spaces used when a
// citation does not reveal sector or type.
var (
	allSectors   = []Sector{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "C", "E"}
	allTypeCodes = []TypeCode{"L", "R", "E", "PC", "DC", "SC", "JC", "CJ", "CC", "CO"}
)

// ID is a structured CELEX identifier: {sector}{year}{type}{number}.
// Example: 32019R0947 is sector 3 (legislation), year 2019, regulation,
// document 947.
type ID struct {
	Sector Sector   `json:"sector"`
	Year   string   `json:"year"`
	Type   TypeCode `json:"type_code"`
	Number string   `json:"number"`
}

// String returns the canonical CELEX string.
func (id ID) String() string {
	return string(id.Sector) + id.Year + string(id.Type) + id.Number
}

// FromSlashNotation derives a CELEX ID from a reference like
// "2019/947" or "947/2019". Whichever side of the slash falls inside
// the plausible year range (1800 through the current year) is taken as
// the year; when both sides qualify the second wins. Extra path
// segments beyond the first two are ignored.
func FromSlashNotation(notation string, docType TypeCode, sector Sector) (ID, error) {
	if docType == "" {
		docType = TypeRegulation
	}
	if sector == "" {
		sector = SectorLegislation
	}

	parts := strings.Split(notation, "/")
	if len(parts) < 2 {
		return ID{}, fmt.Errorf("slash notation %q: expected <term>/<term>", notation)
	}
	term1, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ID{}, fmt.Errorf("slash notation %q: %w", notation, err)
	}
	term2, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ID{}, fmt.Errorf("slash notation %q: %w", notation, err)
	}

	currentYear := time.Now().Year()
	isYear := func(term int) bool { return term >= 1800 && term <= currentYear }

	year, number := term2, term1
	if isYear(term1) && !isYear(term2) {
		year, number = term1, term2
	}

	return ID{
		Sector: sector,
		Year:   strconv.Itoa(year),
		Type:   docType,
		Number: padNumber(strconv.Itoa(number)),
	}, nil
}

// Candidates fans a slash notation out across every sector and type
// code not pinned by the caller. Pass empty values to leave a
// dimension open.
func Candidates(notation string, docType TypeCode, sector Sector) ([]ID, error) {
	sectors := allSectors
	if sector != "" {
		sectors = []Sector{sector}
	}
	typeCodes := allTypeCodes
	if docType != "" {
		typeCodes = []TypeCode{docType}
	}

	var ids []ID
	for _, s := range sectors {
		for _, tc := range typeCodes {
			id, err := FromSlashNotation(notation, tc, s)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// padNumber left-pads a document number to four digits.
func padNumber(number string) string {
	for len(number) < 4 {
		number = "0" + number
	}
	return number
}
