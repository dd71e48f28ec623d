package models

// Principal is the authenticated actor of a request. It is passed explicitly
// to every service and policy call.
type Principal struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Role     RoleName `json:"role"`
}
