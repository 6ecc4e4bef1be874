package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("KAKEIBO_TEST_DIR", "/tmp/kakeibo")

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "empty path unchanged",
			path: "",
			want: "",
		},
		{
			name: "absolute path unchanged",
			path: "/var/lib/kakeibo.db",
			want: "/var/lib/kakeibo.db",
		},
		{
			name: "tilde alone",
			path: "~",
			want: home,
		},
		{
			name: "tilde prefix",
			path: "~/data/kakeibo.db",
			want: filepath.Join(home, "data", "kakeibo.db"),
		},
		{
			name: "environment variable",
			path: "$KAKEIBO_TEST_DIR/kakeibo.db",
			want: "/tmp/kakeibo/kakeibo.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
