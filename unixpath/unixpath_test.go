package unixpath

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"root", "/", "/", false},
		{"simple", "/app", "/app", false},
		{"nested", "/app/bin/server", "/app/bin/server", false},
		{"trailing slash cleaned", "/app/", "/app", false},
		{"double slashes cleaned", "//app//bin", "/app/bin", false},
		{"dot elements cleaned", "/app/./bin", "/app/bin", false},
		{"dotdot resolved", "/app/tmp/../bin", "/app/bin", false},
		{"dotdot above root", "/../etc", "/etc", false},
		{"empty", "", "", true},
		{"relative", "app/bin", "", true},
		{"relative dot", "./app", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %q", tt.input, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if p.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, p.String())
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustParse to panic on relative path")
		}
	}()
	MustParse("not/absolute")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		child    string
		expected string
	}{
		{"child of root", "/", "etc", "/etc"},
		{"simple child", "/app", "server", "/app/server"},
		{"multi element child", "/app", "bin/server", "/app/bin/server"},
		{"empty child", "/app", "", "/app"},
		{"child cleaned", "/app", "./conf", "/app/conf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := MustParse(tt.base)
			got := base.Resolve(tt.child)
			if got.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got.String())
			}
		})
	}
}

func TestZeroValueIsRoot(t *testing.T) {
	var p AbsolutePath
	if p.String() != "/" {
		t.Errorf("Expected zero value to be \"/\", got %q", p.String())
	}

	if p.Resolve("app").String() != "/app" {
		t.Errorf("Expected \"/app\", got %q", p.Resolve("app").String())
	}
}

func TestComparable(t *testing.T) {
	a := MustParse("/app/bin")
	b := MustParse("/app//bin/")
	if a != b {
		t.Errorf("Expected %q == %q after cleaning", a, b)
	}

	c := MustParse("/app")
	if a == c {
		t.Errorf("Expected %q != %q", a, c)
	}
}
