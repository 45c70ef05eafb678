// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NormalizeQuality renders a quality setting as a string. Strings pass
// through; integer-valued numbers render without a fractional part and other
// floats with six decimals. A nil quality is the empty string.
func NormalizeQuality(q any) (string, error) {
	switch v := q.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float32:
		return formatQualityFloat(float64(v)), nil
	case float64:
		return formatQualityFloat(v), nil
	default:
		return "", fmt.Errorf("%w: unknown quality type %T", ErrInvalidArgument, q)
	}
}

func formatQualityFloat(f float64) string {
	if _, frac := math.Modf(f); frac == 0 && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// ResolveQuality maps a free-form quality string to an index into options.
//
// An empty input selects the last (best) option, or 0 when the format has
// no options. Otherwise the first matching rule wins: a case-insensitive
// exact match; for inputs starting with digits, an option that starts with
// the same whole number; for other inputs, a case-insensitive substring.
func ResolveQuality(formatName, input string, options []string) (int, error) {
	q := strings.TrimSpace(input)

	if q == "" {
		if len(options) > 0 {
			return len(options) - 1, nil
		}
		return 0, nil
	}

	if len(options) == 0 {
		return -1, fmt.Errorf("%w: unable to parse provided quality value (%s); %ss do not accept quality settings",
			ErrQualityNotSupported, q, formatName)
	}

	for i, opt := range options {
		if strings.EqualFold(opt, q) {
			return i, nil
		}
	}

	if digits := leadingDigits(q); digits != "" {
		// "32" must not select "320 kbps".
		for i, opt := range options {
			if strings.HasPrefix(opt, digits) && len(opt) > len(digits) && !isDigit(opt[len(digits)]) {
				return i, nil
			}
		}
	} else {
		lower := strings.ToLower(q)
		for i, opt := range options {
			if strings.Contains(strings.ToLower(opt), lower) {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: unable to parse provided quality value (%s); valid values for %ss are: %s",
		ErrInvalidQuality, q, formatName, strings.Join(options, ", "))
}

func leadingDigits(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) || r > unicode.MaxASCII })
	if end == -1 {
		return s
	}
	return s[:end]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
