package controllers

import (
	"errors"

	"coursesite/backend/config"
	"coursesite/backend/models"
	"coursesite/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// currentUserID returns the authenticated user's id, or 0 when the
// request carries no valid token. Public pages use it to decorate
// responses without requiring auth.
func (cc *CoursesController) currentUserID(c *fiber.Ctx) uint {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return 0
	}
	return userID
}

// GetCourses lists the catalog. The catalog is public; a valid token
// only adds purchased flags to the rows.
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Course{})

	if q := c.Query("q"); q != "" {
		query = query.Where("title LIKE ?", "%"+q+"%")
	}

	var courses []models.Course
	if err := query.Order("title ASC").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	userID := cc.currentUserID(c)

	purchased := map[string]bool{}
	if userID != 0 {
		var purchases []models.Purchase
		cc.DB.Where("user_id = ?", userID).Find(&purchases)
		for _, p := range purchases {
			purchased[p.CourseID] = true
		}
	}

	result := []fiber.Map{}
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"image_url":   course.ImageURL,
			"purchased":   purchased[course.ID],
		})
	}

	return c.JSON(result)
}

// GetCourseDetails renders the course overview: course fields plus
// the ordered lesson list. Lesson rows here never include video
// references; those are only served by GetLesson after the
// entitlement check.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Params("id")

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	lessons, err := cc.orderedLessons(courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	lessonList := []fiber.Map{}
	for _, lesson := range lessons {
		lessonList = append(lessonList, fiber.Map{
			"id":         lesson.ID,
			"title":      lesson.Title,
			"sort_order": lesson.SortOrder,
		})
	}

	userID := cc.currentUserID(c)

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"image_url":   course.ImageURL,
		},
		"lessons":   lessonList,
		"purchased": HasAccess(cc.DB, userID, courseID),
	})
}

// GetLesson renders the lesson page data. The route is auth-guarded;
// this handler additionally gates the video reference on an
// entitlement check, so an unpurchased course yields the locked view
// with no video reference anywhere in the payload.
func (cc *CoursesController) GetLesson(c *fiber.Ctx) error {
	courseID := c.Params("id")
	lessonID := c.Params("lessonId")

	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var lesson models.Lesson
	if err := cc.DB.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lesson not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if !HasAccess(cc.DB, userID, courseID) {
		return c.JSON(fiber.Map{
			"locked": true,
			"lesson": fiber.Map{
				"id":    lesson.ID,
				"title": lesson.Title,
			},
			"message": "Purchase the course to watch this lesson.",
			"url":     "/courses/" + courseID,
		})
	}

	lessons, err := cc.orderedLessons(courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Prev/next navigation from the ordered lesson sequence.
	var prev, next fiber.Map
	for i, l := range lessons {
		if l.ID != lesson.ID {
			continue
		}
		if i > 0 {
			prev = fiber.Map{"id": lessons[i-1].ID, "title": lessons[i-1].Title}
		}
		if i < len(lessons)-1 {
			next = fiber.Map{"id": lessons[i+1].ID, "title": lessons[i+1].Title}
		}
		break
	}

	return c.JSON(fiber.Map{
		"locked": false,
		"lesson": fiber.Map{
			"id":                lesson.ID,
			"title":             lesson.Title,
			"sort_order":        lesson.SortOrder,
			"video_playback_id": lesson.VideoPlaybackID,
			// A lesson without a video is a valid state, not an
			// error; the client renders a placeholder for it.
			"has_video": lesson.VideoPlaybackID != "",
		},
		"prev": prev,
		"next": next,
	})
}

// orderedLessons returns the course's lessons in display order.
// sort_order ties are broken by id so the sequence is stable.
func (cc *CoursesController) orderedLessons(courseID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := cc.DB.Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&lessons).Error
	return lessons, err
}
