package useragent

import (
	"testing"

	"github.com/snaplink/snaplink/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantDevice  model.DeviceType
		wantBrowser string
		wantOS      string
	}{
		{
			name:        "desktop chrome windows",
			raw:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantDevice:  model.DeviceDesktop,
			wantBrowser: "Chrome",
			wantOS:      "Windows",
		},
		{
			name:        "desktop firefox linux",
			raw:         "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			wantDevice:  model.DeviceDesktop,
			wantBrowser: "Firefox",
			wantOS:      "Linux",
		},
		{
			name:        "mobile safari iphone",
			raw:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			wantDevice:  model.DeviceMobile,
			wantBrowser: "Safari",
			wantOS:      "iOS",
		},
		{
			name:        "mobile chrome android",
			raw:         "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			wantDevice:  model.DeviceMobile,
			wantBrowser: "Chrome",
			wantOS:      "Android",
		},
		{
			name:        "tablet ipad",
			raw:         "Mozilla/5.0 (iPad; CPU OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			wantDevice:  model.DeviceTablet,
			wantBrowser: "Safari",
			wantOS:      "iOS",
		},
		{
			name:        "empty string",
			raw:         "",
			wantDevice:  model.DeviceOther,
			wantBrowser: model.UnknownValue,
			wantOS:      model.UnknownValue,
		},
		{
			name:        "whitespace only",
			raw:         "   ",
			wantDevice:  model.DeviceOther,
			wantBrowser: model.UnknownValue,
			wantOS:      model.UnknownValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw)
			if got.DeviceType != tt.wantDevice {
				t.Errorf("device = %q, want %q", got.DeviceType, tt.wantDevice)
			}
			if got.Browser != tt.wantBrowser {
				t.Errorf("browser = %q, want %q", got.Browser, tt.wantBrowser)
			}
			if got.OS != tt.wantOS {
				t.Errorf("os = %q, want %q", got.OS, tt.wantOS)
			}
		})
	}
}

func TestClassify_GarbageNeverEmpty(t *testing.T) {
	inputs := []string{
		"definitely not a browser",
		"curl/8.4.0",
		"\x00\x01\x02",
	}

	for _, raw := range inputs {
		got := Classify(raw)
		if got.DeviceType == "" || got.Browser == "" || got.OS == "" {
			t.Errorf("Classify(%q) returned empty field: %+v", raw, got)
		}
	}
}
