package types

// AssetType classifies a business asset. It has no computational role.
type AssetType string

const (
	AssetTypeCriticalSystem   AssetType = "critical_system"
	AssetTypeBusinessLocation AssetType = "business_location"
	AssetTypeDataAsset        AssetType = "data_asset"
	AssetTypeKeyPersonnel     AssetType = "key_personnel"
)

// IsValid reports whether t is a known asset type. Empty is accepted as "unspecified".
func (t AssetType) IsValid() bool {
	switch t {
	case "",
		AssetTypeCriticalSystem,
		AssetTypeBusinessLocation,
		AssetTypeDataAsset,
		AssetTypeKeyPersonnel:
		return true
	default:
		return false
	}
}

func (t AssetType) String() string {
	return string(t)
}

// DefenseType classifies a defense system. It has no computational role.
type DefenseType string

const (
	DefenseTypeSecurityControl    DefenseType = "security_control"
	DefenseTypeBusinessContinuity DefenseType = "business_continuity"
	DefenseTypeInsuranceCoverage  DefenseType = "insurance_coverage"
)

// IsValid reports whether t is a known defense type. Empty is accepted as "unspecified".
func (t DefenseType) IsValid() bool {
	switch t {
	case "",
		DefenseTypeSecurityControl,
		DefenseTypeBusinessContinuity,
		DefenseTypeInsuranceCoverage:
		return true
	default:
		return false
	}
}

func (t DefenseType) String() string {
	return string(t)
}
