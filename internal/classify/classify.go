// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns categorical labels to publication text with
// ordered keyword rules. Categories are not mutually exclusive in raw
// text, so rule order encodes the priority policy: the first rule whose
// trigger appears in the text wins, and later rules are never consulted.
package classify

import "strings"

// Rule pairs a label with the substrings that trigger it. A rule matches
// when any trigger appears in the lowercased text.
type Rule struct {
	Label    string
	Triggers []string
}

// OrganismRules are evaluated in order; the first match wins. Reordering
// them changes labels for texts that mention several organisms.
var OrganismRules = []Rule{
	{Label: "Human", Triggers: []string{"human", "astronaut", "crew", "personnel", "person"}},
	{Label: "Plant", Triggers: []string{"plant", "arabidopsis", "crop", "vegetation", "botanical"}},
	{Label: "Microbe", Triggers: []string{"microbe", "bacteria", "virus", "microbial", "pathogen"}},
	{Label: "Animal", Triggers: []string{"animal", "mouse", "rat", "rodent", "mammal"}},
}

// DomainRules are evaluated in order; the first match wins.
var DomainRules = []Rule{
	{Label: "Microgravity", Triggers: []string{"microgravity", "weightless", "zero gravity"}},
	{Label: "Radiation", Triggers: []string{"radiation", "cosmic ray", "solar particle"}},
	{Label: "Bone/Musculoskeletal", Triggers: []string{"bone", "skeleton", "osteo", "density"}},
	{Label: "Immunology", Triggers: []string{"immune", "immunity", "infection"}},
	{Label: "Cardiovascular", Triggers: []string{"cardiovascular", "heart", "circulation"}},
	{Label: "Psychology/Behavior", Triggers: []string{"psychological", "behavior", "stress"}},
}

// Default labels returned when no rule matches.
const (
	DefaultOrganism = "Other"
	DefaultDomain   = "General"
)

// OrganismType classifies the organism studied from title and abstract.
func OrganismType(title, abstract string) string {
	return match(OrganismRules, combined(title, abstract), DefaultOrganism)
}

// ResearchDomain classifies the research domain from title and abstract.
// The two classifications are independent: a text about human bone
// density is labeled Human and Bone/Musculoskeletal.
func ResearchDomain(title, abstract string) string {
	return match(DomainRules, combined(title, abstract), DefaultDomain)
}

// match returns the label of the first rule with a trigger present in
// text, or fallback when none match.
func match(rules []Rule, text, fallback string) string {
	for _, rule := range rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(text, trigger) {
				return rule.Label
			}
		}
	}
	return fallback
}

func combined(title, abstract string) string {
	return strings.ToLower(title + " " + abstract)
}
