package models

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty" binding:"omitempty,oneof=guard operator admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ShipRequest carries the editable ship fields for both create and
// edit. IMO is only checked for presence and uniqueness; it is stored
// as free text.
type ShipRequest struct {
	Name string   `json:"name" validate:"required,min=1,max=100"`
	IMO  string   `json:"imo" validate:"required,min=1,max=20"`
	Flag string   `json:"flag" validate:"omitempty,max=50"`
	Type ShipType `json:"type" validate:"omitempty,oneof=cargo passenger tanker fishing other"`
}

type DeleteShipRequest struct {
	Confirm bool `json:"confirm"`
}

// DashboardStats is the aggregation payload for the control panel.
// MyRegistrations is only computed for operator-or-admin identities and
// is omitted otherwise.
type DashboardStats struct {
	TotalShips      int64              `json:"total_ships"`
	ShipsByType     map[ShipType]int64 `json:"ships_by_type"`
	MyRegistrations *int64             `json:"my_registrations,omitempty"`
}

type HomeStats struct {
	TotalShips int64 `json:"total_ships"`
}
