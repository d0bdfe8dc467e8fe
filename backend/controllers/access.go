package controllers

import (
	"coursesite/backend/models"

	"gorm.io/gorm"
)

// HasAccess reports whether the user holds an entitlement for the
// course. It is a pure read and must run server-side before any
// response that carries a video reference. A zero user id (no
// session) never has access; no lookup is performed for it.
func HasAccess(db *gorm.DB, userID uint, courseID string) bool {
	if userID == 0 {
		return false
	}

	var count int64
	db.Model(&models.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)

	return count > 0
}
