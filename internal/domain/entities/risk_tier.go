package entities

import (
	"fmt"
	"strings"
)

// RiskTier ranks an update by how likely it is to break the project.
// The zero value is TierPatch; tiers compare with the usual integer operators.
type RiskTier int

const (
	TierPatch RiskTier = iota
	TierMinor
	TierPremajor
	TierMajor
	TierIndeterminate
)

var riskTierNames = map[RiskTier]string{ //nolint:gochecknoglobals // lookup table
	TierPatch:         "patch",
	TierMinor:         "minor",
	TierPremajor:      "premajor",
	TierMajor:         "major",
	TierIndeterminate: "indeterminate",
}

func (t RiskTier) String() string {
	if name, ok := riskTierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RiskTier(%d)", int(t))
}

// ParseRiskTier converts a tier name back to its RiskTier.
func ParseRiskTier(name string) (RiskTier, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for tier, tierName := range riskTierNames {
		if tierName == normalized {
			return tier, nil
		}
	}
	return TierIndeterminate, fmt.Errorf("unknown risk tier %q", name)
}

// MarshalText implements encoding.TextMarshaler so tiers render by name in JSON output.
func (t RiskTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RiskTier) UnmarshalText(text []byte) error {
	tier, err := ParseRiskTier(string(text))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}
