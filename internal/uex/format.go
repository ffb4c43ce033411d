package uex

import (
	"regexp"
	"strconv"
)

// terminalPattern rewrites raw terminal names into the location-first
// form used by the detail view. Upstream terminal naming drifts (the
// same shop appears under several labels), so matching is pattern based.
type terminalPattern struct {
	re     *regexp.Regexp
	format string
}

var terminalPatterns = []terminalPattern{
	{regexp.MustCompile(`(?i)^New Deal.*Lorville$`), "Lorville ≫ New Deal"},
	{regexp.MustCompile(`(?i)^Astro Armada$`), "Area18 ≫ Astro Armada"},
	{regexp.MustCompile(`(?i)New Deal.*Crusader|Crusader.*Showroom|Orison`), "Orison ≫ Showroom"},
	{regexp.MustCompile(`(?i)Buy.*Fly.*(Ruin|Checkmate|Orbituary)`), "Ruin Station ≫ Buy and Fly"},
	{regexp.MustCompile(`(?i)Teach'?s.*Levski|Levski.*Teach'?s`), "Levski ≫ Teach's Ship Shop"},
}

// FormatTerminalName returns the display form of a terminal name, or
// the original string when no pattern matches.
func FormatTerminalName(terminal string) string {
	if terminal == "" {
		return "Unknown"
	}
	for _, p := range terminalPatterns {
		if p.re.MatchString(terminal) {
			return p.format
		}
	}
	return terminal
}

// FormatAUECPrice renders an aUEC amount with thousands separators, or
// "-" when absent.
func FormatAUECPrice(price int64) string {
	if price <= 0 {
		return "-"
	}
	s := strconv.FormatInt(price, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
