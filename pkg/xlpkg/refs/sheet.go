package refs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/efp"
)

var plainSheetName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// QuoteSheetName quotes a sheet name for use in a formula when it needs it.
func QuoteSheetName(name string) string {
	if plainSheetName.MatchString(name) && !coordRE.MatchString(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ParseSheetRange splits "Sheet1!A1:B2" or "'My Sheet'!A1" into the sheet
// name and the range. Unquoted names may not contain quotes, spaces or a
// second "!"; such input is rejected rather than guessed at.
func ParseSheetRange(s string) (sheet, rng string, err error) {
	if strings.HasPrefix(s, "'") {
		var b strings.Builder
		i := 1
		for ; i < len(s); i++ {
			if s[i] != '\'' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			break
		}
		if i >= len(s)-1 || s[i+1] != '!' {
			return "", "", fmt.Errorf("%w: %q: unterminated sheet name", ErrInvalidReference, s)
		}
		sheet, rng = b.String(), s[i+2:]
	} else {
		idx := strings.Index(s, "!")
		if idx < 0 {
			return "", "", fmt.Errorf("%w: %q has no sheet name", ErrInvalidReference, s)
		}
		sheet, rng = s[:idx], s[idx+1:]
		if sheet == "" || strings.ContainsAny(sheet, "' ^") {
			return "", "", fmt.Errorf("%w: %q", ErrAmbiguousReference, s)
		}
	}
	if strings.Contains(rng, "!") {
		return "", "", fmt.Errorf("%w: %q", ErrAmbiguousReference, s)
	}
	if _, err := Boundaries(rng); err != nil {
		return "", "", err
	}
	return sheet, rng, nil
}

// RangeToTuple parses a sheet-qualified range into its sheet and bounds.
func RangeToTuple(s string) (string, Bounds, error) {
	sheet, rng, err := ParseSheetRange(s)
	if err != nil {
		return "", Bounds{}, err
	}
	b, err := Boundaries(rng)
	return sheet, b, err
}

// Reference is one range operand found in a formula.
type Reference struct {
	Sheet  string
	Range  string
	Bounds Bounds
}

// String renders the reference with the sheet quoted when needed.
func (r Reference) String() string {
	if r.Sheet == "" {
		return r.Range
	}
	return QuoteSheetName(r.Sheet) + "!" + r.Range
}

// SplitReferences tokenises a formula, such as a defined name's value, and
// returns its range operands in order. Unions ("A1:B2,C3") yield one entry
// per operand.
func SplitReferences(formula string) ([]Reference, error) {
	ps := efp.ExcelParser()
	var out []Reference
	for _, tok := range ps.Parse(formula) {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		sheet, rng := "", tok.TValue
		if idx := strings.LastIndex(tok.TValue, "!"); idx >= 0 {
			sheet, rng = tok.TValue[:idx], tok.TValue[idx+1:]
		}
		b, err := Boundaries(rng)
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", formula, err)
		}
		out = append(out, Reference{Sheet: sheet, Range: rng, Bounds: b})
	}
	return out, nil
}
