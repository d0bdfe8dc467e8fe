package controllers

import (
	"coursesite/backend/config"
	"coursesite/backend/models"
	"coursesite/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard returns the signed-in user's purchased courses plus
// the full catalog for the browse section.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var purchases []models.Purchase
	if err := dc.DB.Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	purchasedIDs := []string{}
	for _, p := range purchases {
		purchasedIDs = append(purchasedIDs, p.CourseID)
	}

	myCourses := []models.Course{}
	if len(purchasedIDs) > 0 {
		if err := dc.DB.Where("id IN ?", purchasedIDs).Order("title ASC").Find(&myCourses).Error; err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	var allCourses []models.Course
	if err := dc.DB.Order("title ASC").Find(&allCourses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
		"my_courses":  courseSummaries(myCourses),
		"all_courses": courseSummaries(allCourses),
	})
}

// GetProfile returns the token holder's identity fields.
func (dc *DashboardController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := dc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func courseSummaries(courses []models.Course) []fiber.Map {
	result := []fiber.Map{}
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"image_url":   course.ImageURL,
		})
	}
	return result
}
