package domain

import (
	"fmt"
)

// FindingKind enumerates every non-fatal problem the validator, scorer
// and scenario engine can report. Callers are expected to switch on it.
type FindingKind int

const (
	FindingKind_MissingRequiredField FindingKind = iota + 1
	FindingKind_InvalidAllocationSum
	FindingKind_InvalidDollarConsistency
	FindingKind_UnsupportedAssetType
	FindingKind_InvalidSymbolFormat
	FindingKind_DuplicateSymbol
	FindingKind_CardinalityViolation
	FindingKind_OutOfRangeField
	FindingKind_UnsupportedCurrency
	FindingKind_MissingCategoryMapping
	FindingKind_ConcentrationWarning
	FindingKind_AllocationNormalized
)

var findingKindNames = map[FindingKind]string{
	FindingKind_MissingRequiredField:     "MissingRequiredField",
	FindingKind_InvalidAllocationSum:     "InvalidAllocationSum",
	FindingKind_InvalidDollarConsistency: "InvalidDollarConsistency",
	FindingKind_UnsupportedAssetType:     "UnsupportedAssetType",
	FindingKind_InvalidSymbolFormat:      "InvalidSymbolFormat",
	FindingKind_DuplicateSymbol:          "DuplicateSymbol",
	FindingKind_CardinalityViolation:     "CardinalityViolation",
	FindingKind_OutOfRangeField:          "OutOfRangeField",
	FindingKind_UnsupportedCurrency:      "UnsupportedCurrency",
	FindingKind_MissingCategoryMapping:   "MissingCategoryMapping",
	FindingKind_ConcentrationWarning:     "ConcentrationWarning",
	FindingKind_AllocationNormalized:     "AllocationNormalized",
}

func (k FindingKind) String() string {
	if name, ok := findingKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FindingKind(%d)", int(k))
}

func (k FindingKind) MarshalText() ([]byte, error) {
	if _, ok := findingKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown finding kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *FindingKind) UnmarshalText(b []byte) error {
	for kind, name := range findingKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown finding kind %q", string(b))
}

type FindingSeverity string

const (
	FindingSeverity_Error   FindingSeverity = "error"
	FindingSeverity_Warning FindingSeverity = "warning"
	FindingSeverity_Info    FindingSeverity = "info"
)

type Finding struct {
	Kind     FindingKind     `json:"kind"`
	Severity FindingSeverity `json:"severity"`
	Message  string          `json:"message"`
	Field    *string         `json:"field,omitempty"`
	// index of the offending asset in the submitted list
	AssetIndex *int `json:"assetIndex,omitempty"`
	// only set for DuplicateSymbol - index of the first occurrence
	RelatedIndex *int     `json:"relatedIndex,omitempty"`
	ActualValue  *string  `json:"actualValue,omitempty"`
	Expected     *string  `json:"expected,omitempty"`
	ActualNumber *float64 `json:"actualNumber,omitempty"`
	SuggestedFix *string  `json:"suggestedFix,omitempty"`
}

type Findings []Finding

// HasBlocking is true when any finding should stop the portfolio from
// being saved. warnings and info findings never block.
func (f Findings) HasBlocking() bool {
	for _, finding := range f {
		if finding.Severity == FindingSeverity_Error {
			return true
		}
	}
	return false
}

func (f Findings) OfKind(kind FindingKind) Findings {
	out := Findings{}
	for _, finding := range f {
		if finding.Kind == kind {
			out = append(out, finding)
		}
	}
	return out
}
