package controllers

import (
	"encoding/json"
	"log"
	"strconv"

	"coursesite/backend/config"
	"coursesite/backend/models"
	"coursesite/backend/payments"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewWebhookController(db *gorm.DB, cfg *config.Config) *WebhookController {
	return &WebhookController{DB: db, Cfg: cfg}
}

// HandleStripeWebhook is the single trust boundary converting Stripe's
// payment confirmation into a purchase row. Stripe calls it directly,
// so there is no session auth; authenticity comes entirely from the
// signature over the raw request body.
//
// Responses drive Stripe's retry loop: 200 stops redelivery, 400 marks
// a payload that can never succeed, 500 asks Stripe to retry.
func (wc *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")

	if signature == "" || wc.Cfg.StripeWebhookSecret == "" {
		log.Println("Missing webhook secret or signature")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook config error",
		})
	}

	event, err := payments.VerifyEvent(c.Body(), signature, wc.Cfg.StripeWebhookSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	// Unrecognized event types are acknowledged, not rejected, so new
	// Stripe event kinds never cause retry storms.
	if string(event.Type) != "checkout.session.completed" {
		return c.JSON(fiber.Map{"received": true})
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("Webhook payload parse failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing metadata",
		})
	}

	courseID := session.Metadata["courseId"]
	userIDStr := session.Metadata["userId"]

	if courseID == "" || userIDStr == "" {
		log.Printf("Missing metadata in session: %s", session.ID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing metadata",
		})
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		log.Printf("Invalid userId metadata in session: %s", session.ID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing metadata",
		})
	}

	purchase := models.Purchase{
		UserID:          uint(userID),
		CourseID:        courseID,
		StripeSessionID: session.ID,
	}

	// Insert-or-ignore against the unique indexes: a redelivered
	// event or a racing duplicate converges to exactly one row and
	// still acks 200, so Stripe stops retrying.
	if err := wc.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&purchase).Error; err != nil {
		log.Printf("Failed to insert purchase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
