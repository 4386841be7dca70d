package permissions

import (
	"io/fs"
	"testing"
)

func TestDefaults(t *testing.T) {
	if DefaultFilePermissions != 0o644 {
		t.Errorf("Expected default file permissions 644, got %s", DefaultFilePermissions)
	}
	if DefaultFolderPermissions != 0o755 {
		t.Errorf("Expected default folder permissions 755, got %s", DefaultFolderPermissions)
	}
}

func TestFromOctalString(t *testing.T) {
	tests := []struct {
		input    string
		expected FilePermissions
		wantErr  bool
	}{
		{"644", 0o644, false},
		{"755", 0o755, false},
		{"777", 0o777, false},
		{"000", 0, false},
		{"400", 0o400, false},
		{"", 0, true},
		{"64", 0, true},
		{"6444", 0, true},
		{"888", 0, true},
		{"abc", 0, true},
		{"-64", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := FromOctalString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FromOctalString(%q) expected error, got %s", tt.input, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromOctalString(%q) failed: %v", tt.input, err)
			}
			if p != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, p)
			}
		})
	}
}

func TestFromFileMode(t *testing.T) {
	mode := fs.ModeDir | fs.ModeSetuid | 0o755
	p := FromFileMode(mode)
	if p != 0o755 {
		t.Errorf("Expected 755 after discarding type bits, got %s", p)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		perms    FilePermissions
		expected string
	}{
		{0o644, "644"},
		{0o755, "755"},
		{0, "000"},
		{0o7, "007"},
	}

	for _, tt := range tests {
		if got := tt.perms.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestFileModeRoundTrip(t *testing.T) {
	p := FilePermissions(0o640)
	if p.FileMode() != fs.FileMode(0o640) {
		t.Errorf("Expected mode 640, got %v", p.FileMode())
	}
}
