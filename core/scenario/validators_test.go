package scenario

import "testing"

func Test_isNearDuplicate(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: "An AI grades all homework", b: "An AI grades all homework", want: true},
		{name: "case and spacing ignored", a: "an ai grades ALL homework  ", b: "An AI grades all homework", want: true},
		{name: "tiny edit", a: "An AI grades all homeworks", b: "An AI grades all homework", want: true},
		{name: "different scenario", a: "An AI grades all homework", b: "Cameras track students during recess", want: false},
		{name: "both empty", a: "", b: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNearDuplicate(tt.a, tt.b); got != tt.want {
				t.Errorf("isNearDuplicate(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
