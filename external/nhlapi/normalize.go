package nhlapi

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

func decodeJSON(raw []byte, target any) error {
	return sonic.Unmarshal(raw, target)
}

// localizedString decodes the api-web convention of wrapping display text in
// {"default": "..."} while still accepting a plain JSON string, which the
// legacy endpoints and some newer fields use.
type localizedString struct {
	Value string
}

func (s *localizedString) UnmarshalJSON(raw []byte) error {
	var plain string
	if err := sonic.Unmarshal(raw, &plain); err == nil {
		s.Value = strings.TrimSpace(plain)
		return nil
	}

	var wrapped struct {
		Default string `json:"default"`
	}
	if err := sonic.Unmarshal(raw, &wrapped); err != nil {
		s.Value = ""
		return nil
	}
	s.Value = strings.TrimSpace(wrapped.Default)
	return nil
}

func (s localizedString) String() string {
	return s.Value
}

// parseProviderDate handles the birth date shapes the provider sends. Returns
// nil for anything unparseable so a bad date never fails a whole roster.
func parseProviderDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, value := range values {
		if value != 0 {
			return value
		}
	}
	return 0
}
