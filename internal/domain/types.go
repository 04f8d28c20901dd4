package domain

// ID is used across domain entities.
type ID = int64

// Roles known to the platform.
const (
	RoleAdmin     = "ADMIN"
	RoleCustomer  = "CUSTOMER"
	RoleCourier   = "COURIER"
	RoleWarehouse = "WAREHOUSE"
)

// RequestContext carries the authenticated actor for the current request.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool     { return rc.Role == RoleAdmin }
func (rc RequestContext) IsCustomer() bool  { return rc.Role == RoleCustomer }
func (rc RequestContext) IsCourier() bool   { return rc.Role == RoleCourier }
func (rc RequestContext) IsWarehouse() bool { return rc.Role == RoleWarehouse }
