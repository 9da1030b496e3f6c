package devicecode

// Validation messages shown inline next to the scan fields.
const (
	WarnSerialNumber = "Serial number must be 10 digits."
	WarnDeviceID     = "Device ID must be 6 or 7 characters (numbers or letters)."
)

// ValidateSerialNumber returns an empty string when s is a well-formed serial
// number (exactly 10 digits) and a warning message otherwise. An empty input
// is never flagged: it means "not yet provided", and submission stays disabled
// until the field is filled in.
func ValidateSerialNumber(s string) string {
	if s == "" || serialRe.MatchString(s) {
		return ""
	}
	return WarnSerialNumber
}

// ValidateDeviceID returns an empty string when s is a well-formed device id
// (6 or 7 case-insensitive alphanumerics) and a warning message otherwise.
// Empty input is never flagged.
func ValidateDeviceID(s string) string {
	if s == "" || deviceIDRe.MatchString(s) {
		return ""
	}
	return WarnDeviceID
}

// Ready reports whether a link may be submitted: both fields present and both
// valid.
func Ready(serialNumber, deviceID string) bool {
	return serialNumber != "" && deviceID != "" &&
		ValidateSerialNumber(serialNumber) == "" &&
		ValidateDeviceID(deviceID) == ""
}
