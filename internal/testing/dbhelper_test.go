package testing

import "testing"

func TestWithDatabase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/postgres?sslmode=disable", "postgres://u:p@localhost:5432/other?sslmode=disable"},
		{"postgresql://localhost/", "postgresql://localhost/other"},
		{"host=localhost user=u", "host=localhost user=u dbname=other"},
	}

	for _, tt := range tests {
		if got := WithDatabase(tt.in, "other"); got != tt.want {
			t.Errorf("WithDatabase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
