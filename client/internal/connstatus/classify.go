package connstatus

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Generation is the cellular technology generation a subtype belongs to
type Generation int

const (
	GenUnknown Generation = iota
	Gen2G
	Gen3G
	Gen4G
)

func (g Generation) String() string {
	switch g {
	case Gen2G:
		return "2g"
	case Gen3G:
		return "3g"
	case Gen4G:
		return "4g"
	default:
		return "unknown"
	}
}

// ParseGeneration is the inverse of Generation.String
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2g":
		return Gen2G, nil
	case "3g":
		return Gen3G, nil
	case "4g":
		return Gen4G, nil
	case "unknown", "":
		return GenUnknown, nil
	default:
		return GenUnknown, fmt.Errorf("unknown generation %q", s)
	}
}

func (g Generation) status() ConnectStatus {
	switch g {
	case Gen2G:
		return Mobile2G
	case Gen3G:
		return Mobile3G
	case Gen4G:
		return Mobile4G
	default:
		return MobileUnknown
	}
}

var defaultGenerations = map[Generation][]Subtype{
	Gen2G: {SubtypeGPRS, SubtypeGSM, SubtypeEDGE, SubtypeCDMA, Subtype1xRTT, SubtypeIDEN},
	Gen3G: {SubtypeUMTS, SubtypeEVDO0, SubtypeEVDOA, SubtypeHSDPA, SubtypeHSUPA, SubtypeHSPA, SubtypeEVDOB, SubtypeEHRPD, SubtypeHSPAP, SubtypeTDSCDMA},
	Gen4G: {SubtypeLTE, SubtypeIWLAN},
}

// Classifier maps raw network readings to a ConnectStatus. It is immutable after construction
// and safe for concurrent use.
type Classifier struct {
	table map[Subtype]Generation
}

// DefaultClassifier carries the stock subtype table
var DefaultClassifier = NewClassifier(nil)

// NewClassifier returns a classifier with the stock table plus the given overrides.
// An override to GenUnknown removes the subtype from the table.
func NewClassifier(overrides map[Subtype]Generation) *Classifier {
	table := make(map[Subtype]Generation)
	for gen, subtypes := range defaultGenerations {
		for _, st := range subtypes {
			table[st] = gen
		}
	}
	for st, gen := range overrides {
		if gen == GenUnknown {
			delete(table, st)
			continue
		}
		table[st] = gen
	}
	return &Classifier{table: table}
}

// Generation returns the generation of a subtype; unlisted and negative codes are GenUnknown
func (c *Classifier) Generation(st Subtype) Generation {
	return c.table[st]
}

// Subtypes returns the subtypes mapped to gen in ascending code order
func (c *Classifier) Subtypes(gen Generation) []Subtype {
	var out []Subtype
	for st, g := range c.table {
		if g == gen {
			out = append(out, st)
		}
	}
	slices.Sort(out)
	return out
}

// Known returns every subtype present in the table in ascending code order
func (c *Classifier) Known() []Subtype {
	keys := maps.Keys(c.table)
	slices.Sort(keys)
	return keys
}

// Classify derives the single status of a reading
func (c *Classifier) Classify(state RawNetworkState) ConnectStatus {
	if !state.HasActive {
		return NoNetwork
	}
	if !state.Connected {
		return NoConnected
	}

	switch state.Transport {
	case TransportWifi:
		return Wifi
	case TransportMobile:
		return c.Generation(state.Subtype).status()
	default:
		return Other
	}
}

// Broadcast returns the statuses a change event emits, in order. A mobile reading emits the
// coarse Mobile status ahead of the refined one.
func (c *Classifier) Broadcast(state RawNetworkState) []ConnectStatus {
	status := c.Classify(state)
	if status.IsMobile() {
		return []ConnectStatus{Mobile, status}
	}
	return []ConnectStatus{status}
}

func (c *Classifier) IsNetConnected(state RawNetworkState) bool {
	return c.Classify(state).Connected()
}

func (c *Classifier) IsWifiConnected(state RawNetworkState) bool {
	return c.Classify(state) == Wifi
}

func (c *Classifier) IsMobileConnected(state RawNetworkState) bool {
	return c.Classify(state).IsMobile()
}

func (c *Classifier) Is2GConnected(state RawNetworkState) bool {
	return c.Classify(state) == Mobile2G
}

func (c *Classifier) Is3GConnected(state RawNetworkState) bool {
	return c.Classify(state) == Mobile3G
}

func (c *Classifier) Is4GConnected(state RawNetworkState) bool {
	return c.Classify(state) == Mobile4G
}

// Classify uses DefaultClassifier
func Classify(state RawNetworkState) ConnectStatus {
	return DefaultClassifier.Classify(state)
}

// Broadcast uses DefaultClassifier
func Broadcast(state RawNetworkState) []ConnectStatus {
	return DefaultClassifier.Broadcast(state)
}

func IsNetConnected(state RawNetworkState) bool    { return DefaultClassifier.IsNetConnected(state) }
func IsWifiConnected(state RawNetworkState) bool   { return DefaultClassifier.IsWifiConnected(state) }
func IsMobileConnected(state RawNetworkState) bool { return DefaultClassifier.IsMobileConnected(state) }
func Is2GConnected(state RawNetworkState) bool     { return DefaultClassifier.Is2GConnected(state) }
func Is3GConnected(state RawNetworkState) bool     { return DefaultClassifier.Is3GConnected(state) }
func Is4GConnected(state RawNetworkState) bool     { return DefaultClassifier.Is4GConnected(state) }
