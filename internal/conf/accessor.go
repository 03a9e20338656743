package conf

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ErrNotFound is returned by Value when a key path does not resolve.
var ErrNotFound = errors.New("key path not found")

// TypeError reports a value that cannot be converted to the requested type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value at %q is %s, expected %s", e.Path, e.Actual, e.Expected)
}

// Value returns the value at path converted to T. Numbers are converted
// between int, int64 and float64, since JSON, TOML and YAML decode them
// differently. Use Value[any] for the raw value.
func Value[T any](c *Configuration, path string) (T, error) {
	var zero T

	raw, ok := c.Lookup(path)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if v, ok := raw.(T); ok {
		return v, nil
	}
	// A stored nil satisfies any interface type.
	if raw == nil && any(zero) == nil {
		return zero, nil
	}

	converted, ok := convertNumber(raw, any(zero))
	if ok {
		return converted.(T), nil
	}

	return zero, &TypeError{
		Path:     path,
		Expected: fmt.Sprintf("%T", zero),
		Actual:   fmt.Sprintf("%T", raw),
	}
}

// convertNumber converts a decoded number to the numeric type of target.
// Integers convert between int and int64 directly. Floats convert to integer
// types only when they are integral and in range.
func convertNumber(raw any, target any) (any, bool) {
	switch target.(type) {
	case float64:
		switch v := raw.(type) {
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case uint64:
			return float64(v), true
		}
		return nil, false
	case int64:
		n, ok := toInt64(raw)
		if !ok {
			return nil, false
		}
		return n, true
	case int:
		n, ok := toInt64(raw)
		if !ok || n < math.MinInt || n > math.MaxInt {
			return nil, false
		}
		return int(n), true
	default:
		return nil, false
	}
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func valueOr[T any](c *Configuration, path string, def T) T {
	v, err := Value[T](c, path)
	if err != nil {
		return def
	}
	return v
}

// GetString returns the string at path, or def.
func (c *Configuration) GetString(path, def string) string {
	return valueOr(c, path, def)
}

// GetBool returns the bool at path, or def.
func (c *Configuration) GetBool(path string, def bool) bool {
	return valueOr(c, path, def)
}

// GetInt returns the integer at path, or def.
func (c *Configuration) GetInt(path string, def int) int {
	return valueOr(c, path, def)
}

// GetInt64 returns the integer at path, or def.
func (c *Configuration) GetInt64(path string, def int64) int64 {
	return valueOr(c, path, def)
}

// GetFloat64 returns the number at path, or def.
func (c *Configuration) GetFloat64(path string, def float64) float64 {
	return valueOr(c, path, def)
}

// GetDuration parses the string at path with time.ParseDuration. It returns
// def when the value is missing or not a valid duration.
func (c *Configuration) GetDuration(path string, def time.Duration) time.Duration {
	s, err := Value[string](c, path)
	if err != nil {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// GetStringSlice returns the list of strings at path, or def when the value
// is missing, not a list, or holds a non-string element.
func (c *Configuration) GetStringSlice(path string, def []string) []string {
	items, err := Value[[]any](c, path)
	if err != nil {
		return def
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return def
		}
		result = append(result, s)
	}
	return result
}

// Sub returns a Configuration holding a deep copy of the subtree at path.
// The result is empty when path is missing or not a map.
func (c *Configuration) Sub(path string) *Configuration {
	m, err := Value[map[string]any](c, path)
	if err != nil {
		return New(nil)
	}
	return New(m).Clone()
}

// Decode stores the subtree at path into v, which must be a pointer. Fields
// are matched by their `json` struct tags. Input is weakly typed, so numeric
// strings decode into numbers, and duration strings such as "30s" decode
// into time.Duration.
func (c *Configuration) Decode(path string, v any) error {
	raw, ok := c.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           v,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder for %s: %w", path, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
