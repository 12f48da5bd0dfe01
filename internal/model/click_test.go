package model

import "testing"

func TestDeviceClicks_Total(t *testing.T) {
	d := DeviceClicks{Mobile: 3, Desktop: 2, Tablet: 1, Other: 4}
	if got := d.Total(); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}

	var zero DeviceClicks
	if got := zero.Total(); got != 0 {
		t.Errorf("zero Total() = %d, want 0", got)
	}
}
