package catalog

import (
	"encoding/json"
	"testing"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"bare number", `123.5`, 123.5},
		{"quoted number", `"78406.00"`, 78406},
		{"quoted integer", `"4"`, 4},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"placeholder text", `"TBD"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if float64(n) != tt.want {
				t.Errorf("Number(%s) = %v, want %v", tt.input, float64(n), tt.want)
			}
		})
	}
}

func TestVehicleRecordUnmarshalMixedTypes(t *testing.T) {
	// The ship matrix mixes quoted and bare numerics between records.
	raw := `{"name":"Carrack","mass":"4625358.00","min_crew":4,"max_crew":"6","scm_speed":null}`

	var v VehicleRecord
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if float64(v.Mass) != 4625358 || float64(v.MinCrew) != 4 || float64(v.MaxCrew) != 6 {
		t.Errorf("mixed numerics parsed as mass=%v min=%v max=%v", v.Mass, v.MinCrew, v.MaxCrew)
	}
	if float64(v.SCMSpeed) != 0 {
		t.Errorf("null speed should read as 0, got %v", v.SCMSpeed)
	}
}
