package devicecode

import "testing"

func TestValidateSerialNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2969020562", ""},
		{"296902056", WarnSerialNumber},
		{"29690205621", WarnSerialNumber},
		{"29690A0562", WarnSerialNumber},
		{"2930159717", ""},
	}

	for _, tt := range tests {
		if got := ValidateSerialNumber(tt.in); got != tt.want {
			t.Errorf("ValidateSerialNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateDeviceID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"509821", ""},
		{"KKXSYYT", ""},
		{"kkxsyyt", ""},
		{"50982", WarnDeviceID},
		{"KKXSYYTT", WarnDeviceID},
		{"KKX-YYT", WarnDeviceID},
	}

	for _, tt := range tests {
		if got := ValidateDeviceID(tt.in); got != tt.want {
			t.Errorf("ValidateDeviceID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		serial, device string
		want           bool
	}{
		{"2969020562", "KKXSYYT", true},
		{"2969020562", "", false},
		{"", "KKXSYYT", false},
		{"296902056", "KKXSYYT", false},
		{"2969020562", "KKXSYYTT", false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := Ready(tt.serial, tt.device); got != tt.want {
			t.Errorf("Ready(%q, %q) = %v, want %v", tt.serial, tt.device, got, tt.want)
		}
	}
}
