package partcat

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsers for human-entered electrical values. Each returns the value in
// base units (ohms, farads, volts, amperes, watts) and false when the input
// does not parse.

var (
	resistanceRe  = regexp.MustCompile(`^([0-9.]+)\s*([KMR\x{03A9}])?(?:OHM)?S?$`)
	capacitanceRe = regexp.MustCompile(`^([0-9.]+)\s*([FPNUM])?F?$`)
	voltageRe     = regexp.MustCompile(`^([0-9.]+)\s*V?$`)
	currentRe     = regexp.MustCompile(`^([0-9.]+)\s*(M)?A?$`)
	powerRe       = regexp.MustCompile(`^([0-9.]+)\s*(M)?W?$`)
)

// ParseResistance parses a resistance value to ohms: "10k" -> 10000,
// "4.7K" -> 4700, "10R" -> 10, "1M" -> 1e6, "100ohm" -> 100.
func ParseResistance(s string) (float64, bool) {
	m := resistanceRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "K":
		return v * 1e3, true
	case "M":
		return v * 1e6, true
	default: // "R", "Ω" or no suffix
		return v, true
	}
}

// ParseCapacitance parses a capacitance value to farads: "10uF" -> 1e-5,
// "100nF" -> 1e-7, "22pF" -> 2.2e-11. A bare number is read as microfarads.
func ParseCapacitance(s string) (float64, bool) {
	m := capacitanceRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "F":
		return v, true
	case "M":
		return v * 1e-3, true
	case "N":
		return v * 1e-9, true
	case "P":
		return v * 1e-12, true
	default: // "U" or no suffix
		return v * 1e-6, true
	}
}

// ParseVoltage parses a voltage value to volts: "5V" -> 5, "3.3" -> 3.3.
func ParseVoltage(s string) (float64, bool) {
	m := voltageRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	return v, err == nil
}

// ParseCurrent parses a current value to amperes: "2A" -> 2, "100mA" -> 0.1.
func ParseCurrent(s string) (float64, bool) {
	m := currentRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "M" {
		return v * 1e-3, true
	}
	return v, true
}

// ParsePower parses a power value to watts: "250mW" -> 0.25, "1W" -> 1.
func ParsePower(s string) (float64, bool) {
	m := powerRe.FindStringSubmatch(normalizeValue(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "M" {
		return v * 1e-3, true
	}
	return v, true
}

// ParsePrice parses a price-tier value that may arrive as a plain number
// rendered as a string or carry a leading currency symbol ("$0.0037").
// The leading non-numeric prefix is stripped and the remainder must parse
// as a float; anything else does not yield a value, and components without
// a parsed lowest-tier price sort after all priced components.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if i < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[i:], 64)
	return v, err == nil
}

// normalizeValue prepares user input for the value grammars: micro signs
// become "u" before upper-casing (Unicode upper-casing would otherwise turn
// them into a Greek capital Mu).
func normalizeValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "µ", "u")
	s = strings.ReplaceAll(s, "μ", "u")
	return strings.ToUpper(s)
}
