package models

import "github.com/google/uuid"

// CanModify reports whether the actor may mutate content owned by authorID.
// The rule is author-or-staff for every content kind.
func CanModify(actor Actor, authorID uuid.UUID) bool {
	return actor.IsStaff || actor.ID == authorID
}
