package cofounder_type_enum

const (
	TECHNICAL     = "Technical"
	NON_TECHNICAL = "Non-technical"
	HYBRID        = "Hybrid"
)

// IsValid 空值视为未填写，同样合法
func IsValid(t string) bool {
	switch t {
	case "", TECHNICAL, NON_TECHNICAL, HYBRID:
		return true
	}
	return false
}
