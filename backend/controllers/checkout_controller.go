package controllers

import (
	"errors"
	"log"
	"strconv"

	"coursesite/backend/config"
	"coursesite/backend/models"
	"coursesite/backend/payments"
	"coursesite/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
)

type CheckoutController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Checkout payments.CheckoutCreator
}

func NewCheckoutController(db *gorm.DB, cfg *config.Config, checkout payments.CheckoutCreator) *CheckoutController {
	return &CheckoutController{DB: db, Cfg: cfg, Checkout: checkout}
}

// InitiateCheckout opens a hosted payment session for one course and
// returns its URL. It writes no local state: the entitlement is only
// ever created by the webhook handler once Stripe confirms payment.
func (cc *CheckoutController) InitiateCheckout(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type checkoutInput struct {
		CourseID string `json:"courseId"`
	}

	var input checkoutInput
	if err := c.BodyParser(&input); err != nil || input.CourseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing courseId",
		})
	}

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Benign, expected condition: point the buyer back at the
	// course instead of charging twice.
	if HasAccess(cc.DB, userID, course.ID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Already purchased",
			"url":   "/courses/" + course.ID,
		})
	}

	origin := c.Get("Origin")
	if origin == "" {
		origin = cc.Cfg.PublicOrigin
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(course.Title),
	}
	if course.Description != "" {
		productData.Description = stripe.String(course.Description)
	}
	if course.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{course.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String("usd"),
					ProductData: productData,
					UnitAmount:  stripe.Int64(cc.Cfg.CoursePriceCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		// Query markers are a UI hint only; access is granted solely
		// through the webhook.
		SuccessURL: stripe.String(origin + "/courses/" + course.ID + "?success=true"),
		CancelURL:  stripe.String(origin + "/courses/" + course.ID + "?canceled=true"),
	}

	// The metadata is the sole carrier of intent from checkout to
	// the webhook; it must round-trip through Stripe unmodified.
	params.AddMetadata("courseId", course.ID)
	params.AddMetadata("userId", strconv.FormatUint(uint64(userID), 10))

	session, err := cc.Checkout.CreateSession(params)
	if err != nil {
		log.Printf("Checkout error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create checkout",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}
