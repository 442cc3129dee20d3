package provider

import (
	"encoding/json"
	"strings"

	"github.com/homestream-cli/homestream/log"
	"github.com/samber/lo"
)

// jsonEntry accepts both {title, url} and {name, value} spellings.
type jsonEntry struct {
	Title string `json:"title"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Value string `json:"value"`
}

// Parse converts a provider directory into providers, preserving input order and duplicates.
//
// Input starting with "[" or "{" is read as a JSON array of objects; anything else as
// "label,url" lines. Malformed input yields an empty directory.
func Parse(directory string) []*Provider {
	trimmed := strings.TrimSpace(directory)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return parseJSON(trimmed)
	}
	return parseLines(trimmed)
}

func parseJSON(s string) []*Provider {
	var entries []jsonEntry
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		log.Warnf("malformed provider directory: %v", err)
		return []*Provider{}
	}

	return lo.FilterMap(entries, func(e jsonEntry, _ int) (*Provider, bool) {
		label := lo.Ternary(e.Title != "", e.Title, e.Name)
		value := lo.Ternary(e.URL != "", e.URL, e.Value)
		if label == "" || value == "" {
			return nil, false
		}
		return &Provider{Label: label, Endpoint: withSlash(value)}, true
	})
}

func parseLines(s string) []*Provider {
	return lo.FilterMap(strings.Split(s, "\n"), func(line string, _ int) (*Provider, bool) {
		label, value, found := strings.Cut(line, ",")
		if !found {
			return nil, false
		}

		label, value = strings.TrimSpace(label), strings.TrimSpace(value)
		if label == "" || !strings.HasPrefix(value, "http") {
			return nil, false
		}
		return &Provider{Label: label, Endpoint: withSlash(value)}, true
	})
}

// Format renders providers back into "label,url" lines.
func Format(providers []*Provider) string {
	var b strings.Builder
	for _, p := range providers {
		b.WriteString(p.Label)
		b.WriteString(",")
		b.WriteString(p.Endpoint)
		b.WriteString("\n")
	}
	return b.String()
}

func withSlash(endpoint string) string {
	if strings.HasSuffix(endpoint, "/") {
		return endpoint
	}
	return endpoint + "/"
}
