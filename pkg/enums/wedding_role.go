package enums

import "fmt"

// WeddingRole represents a per-wedding permissions role. Bride and groom are
// assigned WeddingRoleMainAdmin when the wedding is created.
type WeddingRole string

const (
	WeddingRoleMainAdmin     WeddingRole = "WEDDING_MAIN_ADMIN"
	WeddingRoleFamilyAdmin   WeddingRole = "FAMILY_ADMIN"
	WeddingRoleVendorManager WeddingRole = "VENDOR_MANAGER"
	WeddingRoleGuest         WeddingRole = "GUEST"
)

// SystemRoleAppOwner marks platform operators; it lives on the user row, not
// on a wedding membership.
const SystemRoleAppOwner = "APP_OWNER"

var validWeddingRoles = []WeddingRole{
	WeddingRoleMainAdmin,
	WeddingRoleFamilyAdmin,
	WeddingRoleVendorManager,
	WeddingRoleGuest,
}

// String implements fmt.Stringer.
func (r WeddingRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known WeddingRole.
func (r WeddingRole) IsValid() bool {
	for _, candidate := range validWeddingRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseWeddingRole converts raw input into a WeddingRole.
func ParseWeddingRole(value string) (WeddingRole, error) {
	for _, candidate := range validWeddingRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wedding role %q", value)
}
