package format

import "testing"

func TestSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{512, "512 B"},
		{1024 * 1024, "1.0 MiB"},
		{1536 * 1024, "1.5 MiB"},
	}
	for _, tc := range tests {
		if got := Size(tc.in); got != tc.want {
			t.Errorf("Size(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestSizeMB(t *testing.T) {
	if got := SizeMB(1_000_000); got != 0.95 {
		t.Errorf("SizeMB(1e6) = %v; want 0.95", got)
	}
	if got := SizeMB(3 * 1024 * 1024); got != 3 {
		t.Errorf("SizeMB(3MiB) = %v; want 3", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tc := range tests {
		if got := Duration(tc.in); got != tc.want {
			t.Errorf("Duration(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestViews(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{999, "999"},
		{1_000, "1.0K"},
		{1_234_567, "1.2M"},
		{2_500_000_000, "2.5B"},
	}
	for _, tc := range tests {
		if got := Views(tc.in); got != tc.want {
			t.Errorf("Views(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
