package quiz

import "fmt"

// Scent family identifiers used across profiles, scoring, and explanations.
const (
	FamilyFresh    = "fresh"
	FamilyCitrus   = "citrus"
	FamilyFruity   = "fruity"
	FamilyFloral   = "floral"
	FamilyWoody    = "woody"
	FamilyAmber    = "amber"
	FamilySpicy    = "spicy"
	FamilyGourmand = "gourmand"
	FamilyMusky    = "musky"
	FamilyAquatic  = "aquatic"
	FamilyGreen    = "green"
	FamilyPowdery  = "powdery"
)

// Families lists every known scent family.
var Families = []string{
	FamilyFresh, FamilyCitrus, FamilyFruity, FamilyFloral,
	FamilyWoody, FamilyAmber, FamilySpicy, FamilyGourmand,
	FamilyMusky, FamilyAquatic, FamilyGreen, FamilyPowdery,
}

// Contribution is a sparse vector of per-family weights produced by one
// answer value.
type Contribution map[string]float64

// Mapping is the closed answer-value to family-contribution table.
// Values not present in the table contribute nothing; callers log them
// as a data signal rather than rejecting the request.
type Mapping struct {
	contributions map[string]Contribution
}

// NewMapping validates a mapping table: every referenced family must be a
// known family and every weight must be positive. A mapping that fails this
// check is a data error detected at load time, not a silent heuristic miss.
func NewMapping(table map[string]Contribution) (*Mapping, error) {
	known := make(map[string]struct{}, len(Families))
	for _, f := range Families {
		known[f] = struct{}{}
	}

	for value, contrib := range table {
		if len(contrib) == 0 {
			return nil, fmt.Errorf("answer value %q maps to no families", value)
		}
		for family, weight := range contrib {
			if _, ok := known[family]; !ok {
				return nil, fmt.Errorf("answer value %q references unknown family %q", value, family)
			}
			if weight <= 0 {
				return nil, fmt.Errorf("answer value %q has non-positive weight %v for family %q", value, weight, family)
			}
		}
	}

	return &Mapping{contributions: table}, nil
}

// Lookup returns the contribution for an answer value, or (nil, false) when
// the value is unmapped.
func (m *Mapping) Lookup(value string) (Contribution, bool) {
	c, ok := m.contributions[value]
	return c, ok
}

// Len returns the number of mapped answer values.
func (m *Mapping) Len() int { return len(m.contributions) }

// DefaultMapping returns the built-in answer-value table covering the
// standard quiz question set. Deployments can replace it via configuration.
func DefaultMapping() *Mapping {
	m, err := NewMapping(map[string]Contribution{
		// style question
		"fresh_clean":     {FamilyFresh: 0.5, FamilyCitrus: 0.2, FamilyAquatic: 0.1},
		"fresh_citrus":    {FamilyFresh: 0.4, FamilyCitrus: 0.4, FamilyFruity: 0.2},
		"warm_cozy":       {FamilyAmber: 0.4, FamilyGourmand: 0.3, FamilySpicy: 0.2},
		"bold_statement":  {FamilySpicy: 0.4, FamilyWoody: 0.3, FamilyAmber: 0.2},
		"soft_romantic":   {FamilyFloral: 0.5, FamilyPowdery: 0.3, FamilyMusky: 0.1},
		"earthy_natural":  {FamilyWoody: 0.4, FamilyGreen: 0.4, FamilyMusky: 0.1},
		"sweet_playful":   {FamilyGourmand: 0.5, FamilyFruity: 0.3, FamilyFloral: 0.1},
		"elegant_classic": {FamilyFloral: 0.3, FamilyPowdery: 0.3, FamilyWoody: 0.2},

		// occasion question
		"everyday_casual": {FamilyFresh: 0.3, FamilyCitrus: 0.2, FamilyMusky: 0.1},
		"office_work":     {FamilyFresh: 0.3, FamilyWoody: 0.2, FamilyPowdery: 0.1},
		"date_night":      {FamilyAmber: 0.3, FamilyMusky: 0.3, FamilyGourmand: 0.2},
		"special_event":   {FamilyAmber: 0.3, FamilyFloral: 0.3, FamilySpicy: 0.2},
		"gym_outdoors":    {FamilyFresh: 0.4, FamilyAquatic: 0.3, FamilyCitrus: 0.2},

		// season question
		"spring":     {FamilyFloral: 0.4, FamilyGreen: 0.3, FamilyFruity: 0.2},
		"summer":     {FamilyCitrus: 0.4, FamilyAquatic: 0.3, FamilyFresh: 0.3},
		"autumn":     {FamilySpicy: 0.4, FamilyWoody: 0.3, FamilyAmber: 0.2},
		"winter":     {FamilyAmber: 0.4, FamilyGourmand: 0.3, FamilyWoody: 0.2},
		"all_season": {FamilyFresh: 0.2, FamilyWoody: 0.2, FamilyMusky: 0.2},

		// intensity question
		"light_subtle":   {FamilyFresh: 0.3, FamilyPowdery: 0.2, FamilyGreen: 0.1},
		"moderate":       {FamilyFloral: 0.2, FamilyWoody: 0.2, FamilyMusky: 0.1},
		"strong_lasting": {FamilyAmber: 0.3, FamilySpicy: 0.3, FamilyWoody: 0.2},
	})
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return m
}
