package models

// Role is a user's stored role. The stored role is authoritative: tokens
// carry only the principal email, and guards re-read the role on every call.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleCustomer  Role = "customer"
)

// Permission is a single capability a route can require.
type Permission string

const (
	PermManageUsers       Permission = "manage_users"
	PermManageCatalog     Permission = "manage_catalog"
	PermPublishBooks      Permission = "publish_books"
	PermViewAllPayments   Permission = "view_all_payments"
	PermUpdateOrderStatus Permission = "update_order_status"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:     {PermManageUsers, PermManageCatalog, PermViewAllPayments},
	RoleLibrarian: {PermPublishBooks, PermUpdateOrderStatus},
	RoleCustomer:  {},
}

// Can reports whether the role holds the given permission.
func (r Role) Can(p Permission) bool {
	for _, held := range rolePermissions[r] {
		if held == p {
			return true
		}
	}
	return false
}
