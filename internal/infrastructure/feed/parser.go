package feed

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column layout of a supplier feed row. The supplier reference appears
// twice in the export; the first instance is authoritative.
const (
	colFamily = iota
	colSKU
	colDesignation
	colSupplierRef
	colSupplierRefDup
	colSupplierCode
	colStock
	colPrice

	columnCount = 8
)

// invalidFamilyMarker is the sentinel the supplier export uses for rows
// whose family could not be resolved on their side.
const invalidFamilyMarker = "#N/A"

// ParsedVariant is one typed row of a supplier feed.
type ParsedVariant struct {
	Family       string
	SKU          string
	Designation  string
	SupplierRef  string
	SupplierCode string
	Stock        int
	Price        decimal.Decimal
}

// ParseResult holds the parsed rows plus the rejected-row accounting.
type ParseResult struct {
	Variants []ParsedVariant
	Rejected int
	Errors   *ErrorCollection
}

// Parser turns a raw supplier feed blob into typed rows.
type Parser struct {
	delimiter rune
	maxErrors int
}

// ParserOption is a functional option for Parser configuration
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is ';', the French
// spreadsheet-export convention)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// WithMaxErrors caps how many rejected-row errors are kept
func WithMaxErrors(n int) ParserOption {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// NewParser creates a feed parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		delimiter: ';',
		maxErrors: 100,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the whole feed. The first line is a header and is
// discarded. Malformed rows are rejected and counted, never fatal; the
// only fatal condition is a feed with no content at all. Re-parsing the
// same blob is the only restart mechanism, so Parse holds no state
// between calls.
func (p *Parser) Parse(data []byte) (*ParseResult, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, ErrEmptyFeed
	}

	lines := strings.Split(string(data), "\n")

	result := &ParseResult{
		Variants: make([]ParsedVariant, 0, len(lines)-1),
		Errors:   NewErrorCollection(p.maxErrors),
	}

	// lines[0] is the header
	for i, line := range lines[1:] {
		lineNo := i + 2
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := p.splitFields(line)
		variant, rowErr := p.buildVariant(lineNo, fields)
		if rowErr != nil {
			result.Rejected++
			result.Errors.Add(*rowErr)
			continue
		}
		result.Variants = append(result.Variants, variant)
	}

	// A header followed only by blank lines never enters the row loop,
	// so the no-data condition is checked after it
	if len(result.Variants) == 0 && result.Rejected == 0 {
		return nil, ErrNoDataRows
	}

	return result, nil
}

// buildVariant validates and types a tokenized row.
func (p *Parser) buildVariant(lineNo int, fields []string) (ParsedVariant, *RowError) {
	get := func(col int) string {
		if col < len(fields) {
			return strings.TrimSpace(fields[col])
		}
		return ""
	}

	family := get(colFamily)
	sku := get(colSKU)
	designation := get(colDesignation)

	switch {
	case designation == "":
		err := NewRowError(lineNo, "designation", ErrCodeFeedMissingField, "designation is required")
		return ParsedVariant{}, &err
	case sku == "":
		err := NewRowError(lineNo, "sku", ErrCodeFeedMissingField, "sku is required")
		return ParsedVariant{}, &err
	case family == "":
		err := NewRowError(lineNo, "family", ErrCodeFeedMissingField, "family is required")
		return ParsedVariant{}, &err
	case strings.EqualFold(family, invalidFamilyMarker):
		err := NewRowError(lineNo, "family", ErrCodeFeedInvalidFamily, "family is marked invalid by the supplier")
		return ParsedVariant{}, &err
	}

	supplierRef := get(colSupplierRef)
	if supplierRef == "" {
		supplierRef = get(colSupplierRefDup)
	}

	stock := int(ParseFrenchNumber(get(colStock)))
	if stock < 0 {
		stock = 0
	}

	return ParsedVariant{
		Family:       family,
		SKU:          sku,
		Designation:  designation,
		SupplierRef:  supplierRef,
		SupplierCode: get(colSupplierCode),
		Stock:        stock,
		Price:        ParseFrenchDecimal(get(colPrice)),
	}, nil
}

// splitFields tokenizes a line honoring quoted fields. A double quote
// toggles an in-quotes state and the delimiter only ends a field outside
// quotes. This matches the supplier export, which never escapes quotes
// inside quoted fields.
func (p *Parser) splitFields(line string) []string {
	fields := make([]string, 0, columnCount)
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == p.delimiter && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, field.String())

	return fields
}

// ParseFrenchNumber parses a French-locale numeric string: spaces (and
// non-breaking spaces) are thousands separators, the comma is the
// decimal separator. Unparsable input yields 0.
func ParseFrenchNumber(s string) float64 {
	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFrenchDecimal is ParseFrenchNumber for money values.
func ParseFrenchDecimal(s string) decimal.Decimal {
	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
