// Package devicecode parses and validates scanned device codes.
//
// A scan arrives as a single string from a QR reader or manual typing and may
// be a device-resolution URL, a bare serial number, or a "serial deviceID"
// pair printed on the device label. Parsing is tolerant: input that matches no
// known form yields a zero Parsed value, never an error. Format problems in a
// recognized field (wrong length, bad characters) are the validator's job.
package devicecode

import (
	"regexp"
	"strings"
)

// urlMarker is the substring that identifies a device-resolution link,
// e.g. https://a.airthin.gs/2860000123?id=509821.
const urlMarker = "gs/"

var (
	numericRe  = regexp.MustCompile(`^[0-9]+$`)
	pairRe     = regexp.MustCompile(`^([0-9]{10,})\s+([A-Za-z0-9]{6,7})$`)
	idDelimRe  = regexp.MustCompile(`[=&]+`)
	serialRe   = regexp.MustCompile(`^[0-9]{10}$`)
	deviceIDRe = regexp.MustCompile(`^[A-Za-z0-9]{6,7}$`)
)

// Parsed is the result of parsing one scan. Empty fields mean "not present in
// the input", which callers must treat as not-yet-decodable rather than as an
// error.
type Parsed struct {
	SerialNumber string
	DeviceID     string
}

// IsZero reports whether nothing was extracted from the scan.
func (p Parsed) IsZero() bool {
	return p.SerialNumber == "" && p.DeviceID == ""
}

// Parse extracts a serial number and device id from a raw scan string.
// Recognized forms, tried in order:
//
//  1. URL form: "<scheme-host>gs/<serial>?id=<deviceID>". The serial is the
//     path segment strictly between the marker and "?id"; the device id is
//     the first "="/"&"-delimited token after "id".
//  2. Pure numeric: the whole string is digits. Leading and trailing zeros
//     are stripped before the result is returned; a serial ending in zero is
//     therefore shortened. This matches the behavior of the label scanners
//     this tool was built against and is deliberately left as-is.
//  3. Pair form: a run of 10+ digits, whitespace, then 6-7 alphanumerics.
//
// Anything else returns a zero Parsed.
func Parse(raw string) Parsed {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Parsed{}
	}

	if strings.Contains(s, urlMarker) {
		return parseURL(s)
	}

	if numericRe.MatchString(s) {
		return Parsed{SerialNumber: strings.Trim(s, "0")}
	}

	if m := pairRe.FindStringSubmatch(s); m != nil {
		return Parsed{SerialNumber: m[1], DeviceID: m[2]}
	}

	return Parsed{}
}

// parseURL handles the device-resolution link form. A URL without the "?id"
// query part is not decodable and yields a zero Parsed.
func parseURL(s string) Parsed {
	start := strings.Index(s, urlMarker) + len(urlMarker)
	end := strings.Index(s[start:], "?id")
	if end < 0 {
		return Parsed{}
	}

	serial := s[start : start+end]
	rest := s[start+end+len("?id"):]

	var deviceID string
	for _, tok := range idDelimRe.Split(rest, -1) {
		if tok != "" {
			deviceID = tok
			break
		}
	}

	return Parsed{SerialNumber: serial, DeviceID: deviceID}
}
