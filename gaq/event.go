package gaq

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// EventCode returns the _trackEvent call for a user interaction. It does not
// depend on an account, so it needs no Tracker. A zero value is omitted; any
// other value is truncated toward zero and appended as an integer, so 0.5
// renders as 0.
func EventCode(category, action, label string, value float64, wrap bool) (string, error) {
	if category == "" {
		return "", invalid("category", category)
	}
	if action == "" {
		return "", invalid("action", action)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if math.IsNaN(value) || value >= math.MaxInt64 || value < math.MinInt64 {
		return "", invalid("value", strconv.FormatFloat(value, 'g', -1, 64))
	}

	code := fmt.Sprintf(trackEventPrefix, category, action, label)
	if value != 0 {
		code += fmt.Sprintf(", %d", int64(value))
	}
	code += pushClose

	if wrap {
		return wrapInScript(code)
	}
	return code, nil
}

// urlencode trims s and form-encodes it the way PHP's urlencode does.
func urlencode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(strings.TrimSpace(s)), "~", "%7E")
}
