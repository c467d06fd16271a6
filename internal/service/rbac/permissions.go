package rbac

import (
	"github.com/jwalitptl/medclinic-admin/internal/model"
)

// Toggle flips action on screenID and returns the new permission list.
// A screen entry is created on first grant and dropped once its last
// action is revoked, so every screen appears at most once. perms is not
// modified.
func Toggle(perms []model.Permission, screenID string, action model.Action) []model.Permission {
	out := model.ClonePermissions(perms)
	if out == nil {
		out = []model.Permission{}
	}

	for i, p := range out {
		if p.ScreenID != screenID {
			continue
		}
		if idx := indexOf(p.Actions, action); idx >= 0 {
			p.Actions = append(p.Actions[:idx], p.Actions[idx+1:]...)
		} else {
			p.Actions = append(p.Actions, action)
		}
		if len(p.Actions) == 0 {
			return append(out[:i], out[i+1:]...)
		}
		out[i] = p
		return out
	}
	return append(out, model.Permission{ScreenID: screenID, Actions: []model.Action{action}})
}

// Has reports whether perms grant action on screenID.
func Has(perms []model.Permission, screenID string, action model.Action) bool {
	for _, p := range perms {
		if p.ScreenID == screenID {
			return indexOf(p.Actions, action) >= 0
		}
	}
	return false
}

// Normalize merges duplicate screen entries, drops unknown actions and
// duplicates, and removes screens left without actions.
func Normalize(perms []model.Permission) []model.Permission {
	out := make([]model.Permission, 0, len(perms))
	pos := make(map[string]int, len(perms))
	for _, p := range perms {
		i, seen := pos[p.ScreenID]
		if !seen {
			i = len(out)
			pos[p.ScreenID] = i
			out = append(out, model.Permission{ScreenID: p.ScreenID, Actions: []model.Action{}})
		}
		for _, a := range p.Actions {
			if a.Valid() && indexOf(out[i].Actions, a) < 0 {
				out[i].Actions = append(out[i].Actions, a)
			}
		}
	}

	kept := out[:0]
	for _, p := range out {
		if len(p.Actions) > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}

// KnownScreen reports whether id is one of the grid rows.
func KnownScreen(id string) bool {
	for _, s := range model.Screens {
		if s.ID == id {
			return true
		}
	}
	return false
}

func indexOf(actions []model.Action, a model.Action) int {
	for i, x := range actions {
		if x == a {
			return i
		}
	}
	return -1
}
