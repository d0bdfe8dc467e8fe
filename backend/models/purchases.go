package models

import "time"

// Purchase is the durable entitlement: one row grants one user
// permanent access to one course. Rows are written only by the
// Stripe webhook handler and are never updated or deleted.
//
// The composite unique index makes the grant idempotent at the data
// layer: concurrent checkouts and redelivered webhooks cannot produce
// a second row for the same (user, course) pair.
type Purchase struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_purchases_user_course" json:"user_id"`
	CourseID        string `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_course" json:"course_id"`
	StripeSessionID string `gorm:"uniqueIndex" json:"stripe_session_id"`
	CreatedAt       time.Time
}
