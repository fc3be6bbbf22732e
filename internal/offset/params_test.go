package offset

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"default", DefaultParams, true},
		{"one segment", DefaultParams.WithQuadrantSegments(1), true},
		{"zero segments", DefaultParams.WithQuadrantSegments(0), false},
		{"negative segments", DefaultParams.WithQuadrantSegments(-3), false},
		{"zero mitre", DefaultParams.WithMitreLimit(0), false},
		{"nan mitre", DefaultParams.WithMitreLimit(math.NaN()), false},
		{"bad cap", DefaultParams.WithEndCapStyle(CapStyle(7)), false},
		{"bad join", DefaultParams.WithJoinStyle(JoinStyle(-1)), false},
		{"simplify off", DefaultParams.WithSimplifyFactor(0), true},
		{"simplify too big", DefaultParams.WithSimplifyFactor(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("got %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestParseStyles(t *testing.T) {
	caps := map[string]CapStyle{"round": CapRound, "FLAT": CapFlat, "butt": CapFlat, " square ": CapSquare}
	for in, want := range caps {
		got, err := ParseCapStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseCapStyle(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	joins := map[string]JoinStyle{"round": JoinRound, "mitre": JoinMitre, "Miter": JoinMitre, "bevel": JoinBevel}
	for in, want := range joins {
		got, err := ParseJoinStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseJoinStyle(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseCapStyle("pointy"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("got %v, want ErrInvalidParams", err)
	}
	if _, err := ParseJoinStyle(""); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("got %v, want ErrInvalidParams", err)
	}
}

func TestStyleStringsRoundTrip(t *testing.T) {
	for _, c := range []CapStyle{CapRound, CapFlat, CapSquare} {
		if got, _ := ParseCapStyle(c.String()); got != c {
			t.Errorf("%v did not round trip", c)
		}
	}
	for _, j := range []JoinStyle{JoinRound, JoinMitre, JoinBevel} {
		if got, _ := ParseJoinStyle(j.String()); got != j {
			t.Errorf("%v did not round trip", j)
		}
	}
}
