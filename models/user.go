package models

type Role string

const (
	RoleDeliveryMan Role = "Delivery Man"
	RoleAdmin       Role = "Admin"
)

const (
	UserFieldEmail     = "email"
	UserFieldRole      = "role"
	UserFieldCreatedAt = "createdAt"
)

// UserRole returns the role stored on a user document; "" when unset.
func UserRole(doc Document) Role {
	return Role(StringField(doc, UserFieldRole))
}
