// Package check holds the availability model shared by the resolution
// tiers and the scan orchestrator
package check

// Availability is the three-way answer a probe can give for a domain
type Availability string

const (
	Available Availability = "available"
	Taken     Availability = "taken"
	Unknown   Availability = "unknown"
)

// Definite reports whether the answer settles the domain
func (a Availability) Definite() bool { return a == Available || a == Taken }

// Method names the tier that decided a verdict
type Method string

const (
	MethodBulk Method = "bulk"
	MethodRDAP Method = "rdap"
	MethodNS   Method = "ns"
)

// Verdict is one probe's answer for one domain. Price is the structured
// yearly USD amount a source reported; display strings are ignored
type Verdict struct {
	Domain       string       `json:"domain"`
	Method       Method       `json:"method,omitempty"`
	Availability Availability `json:"availability"`
	Note         string       `json:"note,omitempty"`
	Premium      bool         `json:"premium,omitempty"`
	Price        float64      `json:"price,omitempty"`
}

// Undecided builds the unknown verdict carried while tiers are still trying,
// and returned when every tier has failed
func Undecided(domain, note string) Verdict {
	return Verdict{Domain: domain, Availability: Unknown, Note: note}
}
