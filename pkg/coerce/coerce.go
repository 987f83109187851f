// Package coerce turns loosely typed request values into the numbers and
// strings the engine expects. Nothing here fails: unreadable input is 0 or "".
package coerce

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var numberCleaner = strings.NewReplacer(",", "", "$", "", "_", "", " ", "")

// Float reads a number from JSON, YAML or free text such as "$1,250.75".
func Float(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed
		}
	case string:
		cleaned := numberCleaner.Replace(strings.TrimSpace(v))
		if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return parsed
		}
	}
	return 0
}

// Int rounds Float to the nearest whole number, clamped to [0, MaxInt32].
func Int(value interface{}) int {
	f := Float(value)
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f <= 0:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Round(f))
}

// String trims text values and renders JSON numbers; anything else is "".
func String(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	}
	return ""
}

// NumberHook is a mapstructure decode hook that applies Float and Int to
// string values bound for numeric fields, so "n/a" decodes to 0 and
// "$30,000" to 30000 instead of failing the whole decode.
func NumberHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		switch to.Kind() {
		case reflect.Float32, reflect.Float64:
			return Float(data), nil
		case reflect.Int, reflect.Int32, reflect.Int64:
			return Int(data), nil
		}
		return data, nil
	}
}
