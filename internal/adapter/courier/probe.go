package courier

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func jsonUnmarshal(raw []byte, v any) error { return json.Unmarshal(raw, v) }

// firstString — первое непустое строковое значение по списку ключей.
func firstString(e map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := e[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstDecimal — первое числовое значение по списку ключей; числа и
// числовые строки равноправны.
func firstDecimal(e map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := e[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case json.Number:
			if d, err := decimal.NewFromString(v.String()); err == nil {
				return d
			}
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
