package controllers_test

import (
	"testing"

	"coursesite/backend/controllers"

	"github.com/stretchr/testify/assert"
)

func TestHasAccessAnonymous(t *testing.T) {
	user, _ := createUser(t, uniqueEmail())
	course := createCourse(t, "Anonymous Access Course")
	grantPurchase(t, user.ID, course.ID)

	// A zero user id never has access, whatever rows exist.
	assert.False(t, controllers.HasAccess(db, 0, course.ID))
}

func TestHasAccessMonotonicGrant(t *testing.T) {
	user, _ := createUser(t, uniqueEmail())
	course := createCourse(t, "Grant Lifecycle Course")

	assert.False(t, controllers.HasAccess(db, user.ID, course.ID))

	grantPurchase(t, user.ID, course.ID)

	// True once granted, and it stays true: no revocation path exists.
	for i := 0; i < 3; i++ {
		assert.True(t, controllers.HasAccess(db, user.ID, course.ID))
	}
}

func TestHasAccessScopedToCourse(t *testing.T) {
	user, _ := createUser(t, uniqueEmail())
	owned := createCourse(t, "Owned Course")
	other := createCourse(t, "Other Course")
	grantPurchase(t, user.ID, owned.ID)

	assert.True(t, controllers.HasAccess(db, user.ID, owned.ID))
	assert.False(t, controllers.HasAccess(db, user.ID, other.ID))
}
