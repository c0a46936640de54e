package planner

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusChange moves a schedule from one status to another. It applies
// only while the stored status still equals From.
type StatusChange struct {
	From          Status
	To            Status
	WorkflowID    string
	FailureReason string
}

// ChangeStatus applies ch to the schedule row id of model's table and
// reports whether the row was still in ch.From.
func ChangeStatus(db *gorm.DB, model interface{}, id uuid.UUID, ch StatusChange) (bool, error) {
	updates := map[string]interface{}{"generation_status": ch.To}
	if ch.WorkflowID != "" {
		updates["workflow_id"] = ch.WorkflowID
	}
	if ch.FailureReason != "" {
		updates["failure_reason"] = ch.FailureReason
	}
	res := db.Model(model).
		Where("id = ? AND generation_status = ?", id, ch.From).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// ActivateExclusive locks the user's schedule rows of model's table and
// sets is_active on id alone. It returns gorm.ErrRecordNotFound when id is
// not one of the user's rows. Call it inside a transaction.
func ActivateExclusive(tx *gorm.DB, model interface{}, userID, id uuid.UUID) error {
	var ids []uuid.UUID
	if err := tx.Model(model).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	found := false
	for _, rowID := range ids {
		if rowID == id {
			found = true
			break
		}
	}
	if !found {
		return gorm.ErrRecordNotFound
	}

	return tx.Model(model).
		Where("user_id = ?", userID).
		Update("is_active", gorm.Expr("id = ?", id)).Error
}
