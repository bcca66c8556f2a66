package engine

import "fmt"

// =============================================================================
// CAUSAL - Closed set of day reason codes
// =============================================================================

// Causal is the reason code attached to a day's entry. The set is closed:
// every switch over Causal in this package handles all values explicitly,
// so adding a code forces every consumer to take a position on it.
type Causal string

const (
	// Working causals - actual clocked time counts.
	CausalUfficio Causal = "Ufficio" // office presence
	CausalSmart   Causal = "Smart"   // smart working (remote), quota-limited

	// Leave causals - the day is credited at target.
	CausalFerie    Causal = "Ferie"    // annual leave
	CausalMalattia Causal = "Malattia" // sick leave
	CausalL104     Causal = "104"      // law 104 assistance leave
	CausalArt25    Causal = "Art.25"   // contractual permit, annual cap
	CausalArt26    Causal = "Art.26"   // contractual permit, annual cap
	CausalFS       Causal = "FS"       // suppressed-holiday day, annual cap
	CausalPSTU     Causal = "PSTU"     // study permit, partial-day
	CausalPESA     Causal = "PESA"     // blood-donation style permit, annual cap

	// Synthetic causals - computed for non-working days, never stored.
	CausalWeekend Causal = "Weekend"
	CausalFesta   Causal = "Festa"
)

// AllCausals lists every storable causal, in the order forms present them.
var AllCausals = []Causal{
	CausalUfficio, CausalSmart, CausalFerie, CausalMalattia, CausalL104,
	CausalArt25, CausalArt26, CausalFS, CausalPSTU, CausalPESA,
}

// ParseCausal validates a raw code against the closed set. Synthetic
// codes are accepted: they appear in computed stats, just never in
// stored entries.
func ParseCausal(s string) (Causal, error) {
	c := Causal(s)
	switch c {
	case CausalUfficio, CausalSmart, CausalFerie, CausalMalattia, CausalL104,
		CausalArt25, CausalArt26, CausalFS, CausalPSTU, CausalPESA,
		CausalWeekend, CausalFesta:
		return c, nil
	}
	return "", fmt.Errorf("unknown causal %q", s)
}

func (c Causal) String() string { return string(c) }

// IsSynthetic reports whether the causal is computed rather than stored.
func (c Causal) IsSynthetic() bool {
	return c == CausalWeekend || c == CausalFesta
}

// CountsWorkedTime reports whether worked minutes come from clock-in/out
// arithmetic. Every other storable causal credits the day at target.
func (c Causal) CountsWorkedTime() bool {
	return c == CausalUfficio || c == CausalSmart
}
