// Package title reduces a raw series or movie title to the canonical (base name, season) pair
// used for matching provider results and keying the stream cache.
package title

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Canonical identifies a series season independently of how a provider spells its title.
type Canonical struct {
	BaseName string `json:"base_name"`
	Season   int    `json:"season"`
}

func (c Canonical) String() string {
	return fmt.Sprintf("%s S%d", c.BaseName, c.Season)
}

var numerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
}

var (
	seasonMarker   = regexp.MustCompile(`第([一二三四五六七八九十0-9]+)[季部]`)
	trailingDigits = regexp.MustCompile(`^(.+?)([0-9]+)$`)
	leadingDigits  = regexp.MustCompile(`^[0-9]+`)
)

// Parse extracts the canonical identity of raw.
//
// A "第N季" or "第N部" marker wins over a trailing number; without either the season is 1.
// Parse never fails and always yields a season of at least 1.
func Parse(raw string) Canonical {
	if raw == "" {
		return Canonical{BaseName: raw, Season: 1}
	}

	if loc := seasonMarker.FindStringSubmatchIndex(raw); loc != nil {
		return Canonical{
			BaseName: strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:]),
			Season:   seasonFromNumeral(raw[loc[2]:loc[3]]),
		}
	}

	if m := trailingDigits.FindStringSubmatch(raw); m != nil {
		return Canonical{
			BaseName: strings.TrimSpace(m[1]),
			Season:   atoiOrOne(m[2]),
		}
	}

	return Canonical{BaseName: strings.TrimSpace(raw), Season: 1}
}

// seasonFromNumeral resolves the numeral inside a season marker.
// Chinese numerals 一..十 map directly; otherwise the leading ASCII digits are used.
func seasonFromNumeral(s string) int {
	if n, ok := numerals[s]; ok {
		return n
	}
	return atoiOrOne(leadingDigits.FindString(s))
}

func atoiOrOne(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
