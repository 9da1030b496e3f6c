package devicecode

import "testing"

// TestParse_URLForm verifies extraction from device-resolution links.
func TestParse_URLForm(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Parsed
	}{
		{
			name: "plain link",
			raw:  "https://a.airthin.gs/2860000123?id=509821",
			want: Parsed{SerialNumber: "2860000123", DeviceID: "509821"},
		},
		{
			name: "trailing query params ignored",
			raw:  "https://a.airthin.gs/2860000123?id=509821&utm=label",
			want: Parsed{SerialNumber: "2860000123", DeviceID: "509821"},
		},
		{
			name: "alphanumeric device id",
			raw:  "https://a.airthin.gs/2969020562?id=KKXSYYT",
			want: Parsed{SerialNumber: "2969020562", DeviceID: "KKXSYYT"},
		},
		{
			name: "marker without id query is not decodable",
			raw:  "https://a.airthin.gs/2860000123",
			want: Parsed{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestParse_Numeric verifies the digits-only form, including the zero
// stripping carried over from the label scanners.
func TestParse_Numeric(t *testing.T) {
	tests := []struct {
		raw        string
		wantSerial string
	}{
		{"2969020562", "2969020562"},
		{"0293015971700", "2930159717"},
		{"00012345", "12345"},
		{"12300", "123"},
	}

	for _, tt := range tests {
		got := Parse(tt.raw)
		if got.SerialNumber != tt.wantSerial {
			t.Errorf("Parse(%q).SerialNumber = %q, want %q", tt.raw, got.SerialNumber, tt.wantSerial)
		}
		if got.DeviceID != "" {
			t.Errorf("Parse(%q).DeviceID = %q, want empty", tt.raw, got.DeviceID)
		}
	}
}

// TestParse_PairForm verifies the "<serial> <deviceID>" label form.
func TestParse_PairForm(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Parsed
	}{
		{
			name: "seven char device id",
			raw:  "2969020562 KKXSYYT",
			want: Parsed{SerialNumber: "2969020562", DeviceID: "KKXSYYT"},
		},
		{
			name: "six char device id",
			raw:  "2820001088 AZVZVA",
			want: Parsed{SerialNumber: "2820001088", DeviceID: "AZVZVA"},
		},
		{
			name: "short digit run does not match",
			raw:  "12345 ABCDEF",
			want: Parsed{},
		},
		{
			name: "device id too long does not match",
			raw:  "2969020562 ABCDEFGH",
			want: Parsed{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestParse_Miss verifies that unrecognizable input yields a zero value, not
// an error or a partial result.
func TestParse_Miss(t *testing.T) {
	for _, raw := range []string{"", "   ", "hello world", "abc123", "123-456"} {
		got := Parse(raw)
		if !got.IsZero() {
			t.Errorf("Parse(%q) = %+v, want zero", raw, got)
		}
	}
}
