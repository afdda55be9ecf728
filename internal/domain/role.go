package domain

type Role string

const (
	RoleVendor   Role = "vendor"
	RoleDelivery Role = "delivery"
	RoleCustomer Role = "customer"
)

var Roles = []Role{RoleVendor, RoleDelivery, RoleCustomer}

// ParseRole maps a query value to a Role. Unknown values fall back to vendor.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleDelivery:
		return RoleDelivery
	case RoleCustomer:
		return RoleCustomer
	default:
		return RoleVendor
	}
}

func (r Role) DashboardPath() string {
	switch r {
	case RoleDelivery:
		return "/delivery"
	case RoleCustomer:
		return "/track"
	default:
		return "/vendor"
	}
}

func (r Role) Label() string {
	switch r {
	case RoleDelivery:
		return "Delivery"
	case RoleCustomer:
		return "Customer"
	default:
		return "Vendor"
	}
}
