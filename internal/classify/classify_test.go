package classify

import "testing"

// --- organism classification ---

func TestOrganismType(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		want     string
	}{
		{"astronaut maps to Human", "Effects on astronaut physiology", "", "Human"},
		{"plant", "Arabidopsis root growth", "vegetation response to light", "Plant"},
		{"microbe", "", "biofilm formation in bacteria", "Microbe"},
		{"animal", "Rodent habitat study", "mouse bone loss", "Animal"},
		{"no trigger", "Spacecraft thermal control", "insulation materials", "Other"},
		{"case insensitive", "HUMAN adaptation", "", "Human"},
		// "mouse" also matches Animal, but the Human rule is checked first.
		{"human precedes animal", "Human and mouse comparison", "", "Human"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrganismType(tt.title, tt.abstract); got != tt.want {
				t.Errorf("OrganismType = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- domain classification ---

func TestResearchDomain(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		want     string
	}{
		{"microgravity", "Microgravity effects", "", "Microgravity"},
		{"radiation", "", "cosmic ray exposure during transit", "Radiation"},
		{"bone", "Bone density countermeasures", "", "Bone/Musculoskeletal"},
		{"immunology", "", "immune suppression in flight", "Immunology"},
		{"cardiovascular", "Heart rate variability", "", "Cardiovascular"},
		{"psychology", "Crew behavior in isolation", "", "Psychology/Behavior"},
		{"no trigger", "Propulsion systems", "", "General"},
		// "bone" appears, but the Microgravity rule is checked first.
		{"microgravity precedes bone", "Microgravity-induced bone loss", "", "Microgravity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResearchDomain(tt.title, tt.abstract); got != tt.want {
				t.Errorf("ResearchDomain = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestIndependentDimensions checks that the two classifications never
// interfere: a human bone-density text gets a label on both axes.
func TestIndependentDimensions(t *testing.T) {
	title := "Human bone density loss"
	if got := OrganismType(title, ""); got != "Human" {
		t.Errorf("OrganismType = %q, want Human", got)
	}
	if got := ResearchDomain(title, ""); got != "Bone/Musculoskeletal" {
		t.Errorf("ResearchDomain = %q, want Bone/Musculoskeletal", got)
	}
}

// TestRuleTablesWellFormed enumerates the rule tables directly: every
// rule needs a label, at least one trigger, and lowercase triggers
// (matching is done against lowercased text).
func TestRuleTablesWellFormed(t *testing.T) {
	for _, rules := range [][]Rule{OrganismRules, DomainRules} {
		for _, rule := range rules {
			if rule.Label == "" {
				t.Error("rule with empty label")
			}
			if len(rule.Triggers) == 0 {
				t.Errorf("rule %q has no triggers", rule.Label)
			}
			for _, trig := range rule.Triggers {
				if trig == "" {
					t.Errorf("rule %q has an empty trigger", rule.Label)
				}
			}
		}
	}
}

// --- bioscience relevance gate ---

func TestBioscienceRelevant(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		want     bool
	}{
		{"biology term", "Space biology experiment", "", true},
		{"term in abstract", "Payload report", "microgravity effects on metabolism", true},
		{"off topic", "Hypersonic wind tunnel calibration", "nozzle geometry", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BioscienceRelevant(tt.title, tt.abstract); got != tt.want {
				t.Errorf("BioscienceRelevant = %v, want %v", got, tt.want)
			}
		})
	}
}
