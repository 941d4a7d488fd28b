package common

import "testing"

func TestTeamSizeLabel(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{size: 1, want: "1"},
		{size: 12, want: "12"},
		{size: 99, want: "99"},
		{size: 100, want: "100+"},
	}

	for _, tt := range tests {
		if got := TeamSizeLabel(tt.size); got != tt.want {
			t.Errorf("TeamSizeLabel(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
