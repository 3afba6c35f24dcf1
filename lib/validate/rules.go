package validate

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Required fails on nil and blank strings.
func Required() Rule {
	return Rule{
		Name:    "required",
		Check:   func(v any) bool { return !empty(v) },
		Message: "field is required",
		Always:  true,
	}
}

// MinLen requires a string of at least n characters.
func MinLen(n int) Rule {
	return Rule{
		Name: "min_length",
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) >= n
		},
		Message: fmt.Sprintf("must be at least %d characters long", n),
	}
}

// MaxLen requires a string of at most n characters.
func MaxLen(n int) Rule {
	return Rule{
		Name: "max_length",
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && utf8.RuneCountInString(s) <= n
		},
		Message: fmt.Sprintf("must be at most %d characters long", n),
	}
}

// Numeric requires a number or a string that parses as one.
func Numeric() Rule {
	return Rule{
		Name: "numeric",
		Check: func(v any) bool {
			_, ok := ToFloat(v)
			return ok
		},
		Message: "must be a number",
	}
}

// Min requires a numeric value >= min.
func Min(min float64) Rule {
	return Rule{
		Name: "min",
		Check: func(v any) bool {
			f, ok := ToFloat(v)
			return ok && f >= min
		},
		Message: fmt.Sprintf("must be at least %v", min),
	}
}

// Max requires a numeric value <= max.
func Max(max float64) Rule {
	return Rule{
		Name: "max",
		Check: func(v any) bool {
			f, ok := ToFloat(v)
			return ok && f <= max
		},
		Message: fmt.Sprintf("must be at most %v", max),
	}
}

// In requires the value's string form to be one of allowed.
func In(allowed ...string) Rule {
	return Rule{
		Name: "in",
		Check: func(v any) bool {
			s := fmt.Sprint(v)
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		},
		Message: "must be one of: " + strings.Join(allowed, ", "),
	}
}

// Email requires a single bare address with a dotted domain.
func Email() Rule {
	return Rule{
		Name: "email",
		Check: func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			addr, err := mail.ParseAddress(s)
			if err != nil || addr.Address != strings.TrimSpace(s) {
				return false
			}
			at := strings.LastIndex(addr.Address, "@")
			if at <= 0 {
				return false
			}
			domain := addr.Address[at+1:]
			return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Message: "must be a valid email address",
	}
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
