package model

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions in grid column order.
var Actions = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Screen is one row of the permission grid.
type Screen struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Screens = []Screen{
	{ID: "dashboard", Name: "Dashboard"},
	{ID: "appointments", Name: "Appointments"},
	{ID: "patients", Name: "Patients"},
	{ID: "records", Name: "Medical Records"},
	{ID: "facility", Name: "Facility Management"},
	{ID: "roles", Name: "Role Management"},
	{ID: "users", Name: "User Management"},
}

// Permission grants actions on one screen.
type Permission struct {
	ScreenID string   `json:"screen_id" validate:"required"`
	Actions  []Action `json:"actions"`
}

type Role struct {
	Base
	Code        string       `json:"code" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description"`
	Status      Status       `json:"status" validate:"required,oneof=active inactive"`
	Permissions []Permission `json:"permissions" validate:"dive"`
	// RequiresSpeciality marks roles whose users see patients and therefore
	// need a speciality.
	RequiresSpeciality bool `json:"requires_speciality"`
}

func NewRole() *Role {
	return &Role{Status: StatusActive, Permissions: []Permission{}}
}

func (r *Role) Clone() *Role {
	out := *r
	out.Permissions = ClonePermissions(r.Permissions)
	return &out
}

func (r *Role) SearchFields() []string {
	return []string{r.Name, r.Code}
}

func ClonePermissions(perms []Permission) []Permission {
	if perms == nil {
		return nil
	}
	out := make([]Permission, len(perms))
	for i, p := range perms {
		out[i] = Permission{ScreenID: p.ScreenID, Actions: append([]Action(nil), p.Actions...)}
	}
	return out
}
