package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number tolerates the ship matrix habit of shipping numeric specs as
// quoted strings ("78406.00"), bare numbers, empty strings, or null.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Some records carry placeholder text in numeric fields
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Manufacturer identifies the in-game company that builds a vehicle.
type Manufacturer struct {
	ID   Number `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Component is one entry of a compiled component group (a weapon, a
// thruster, a shield generator, ...).
type Component struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	Manufacturer  string `json:"manufacturer"`
	Size          string `json:"size"`
	ComponentSize string `json:"component_size"`
	Quantity      Number `json:"quantity"`
	Mounts        Number `json:"mounts"`
	Details       string `json:"details"`
	Class         string `json:"component_class"`
}

// Media references the canonical imagery for a vehicle.
type Media struct {
	SourceName string            `json:"source_name"`
	SourceURL  string            `json:"source_url"`
	Images     map[string]string `json:"images"`
}

// VehicleRecord is one canonical catalog entry. Name is the join key
// into every other dataset; it is case-sensitive at rest, but all
// lookups normalize to lowercase trimmed form.
type VehicleRecord struct {
	ID               Number       `json:"id"`
	Name             string       `json:"name"`
	Manufacturer     Manufacturer `json:"manufacturer"`
	Type             string       `json:"type"`
	Focus            string       `json:"focus"`
	Size             string       `json:"size"`
	ProductionStatus string       `json:"production_status"`
	ProductionNote   string       `json:"production_note"`
	Description      string       `json:"description"`
	URL              string       `json:"url"`

	Length        Number `json:"length"`
	Beam          Number `json:"beam"`
	Height        Number `json:"height"`
	Mass          Number `json:"mass"`
	CargoCapacity Number `json:"cargocapacity"`
	MinCrew       Number `json:"min_crew"`
	MaxCrew       Number `json:"max_crew"`

	SCMSpeed          Number `json:"scm_speed"`
	AfterburnerSpeed  Number `json:"afterburner_speed"`
	PitchMax          Number `json:"pitch_max"`
	YawMax            Number `json:"yaw_max"`
	RollMax           Number `json:"roll_max"`
	XAxisAcceleration Number `json:"xaxis_acceleration"`
	YAxisAcceleration Number `json:"yaxis_acceleration"`
	ZAxisAcceleration Number `json:"zaxis_acceleration"`

	HullHP            Number `json:"hull_hp"`
	ShieldHP          Number `json:"shield_hp"`
	HydrogenFuelTanks Number `json:"hydrogen_fuel_tanks"`
	QuantumFuelTanks  Number `json:"quantum_fuel_tanks"`

	Media []Media `json:"media"`

	// Compiled component groups keyed by group (avionics, propulsion,
	// weapons) then category, each an ordered list of components.
	Compiled map[string]map[string][]Component `json:"compiled"`
}
