package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"coursesite/backend/config"
	"coursesite/backend/models"
	"coursesite/backend/routes"
	"coursesite/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app          *fiber.App
	db           *gorm.DB
	cfg          *config.Config
	checkoutFake *fakeCheckout
)

// fakeCheckout records session requests instead of calling Stripe.
type fakeCheckout struct {
	sessions   int
	lastParams *stripe.CheckoutSessionParams
}

func (f *fakeCheckout) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.sessions++
	f.lastParams = params
	return &stripe.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", f.sessions),
		URL: fmt.Sprintf("https://checkout.stripe.test/pay/cs_test_%d", f.sessions),
	}, nil
}

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:           "testsecret",
		StripeWebhookSecret: "whsec_test",
		CoursePriceCents:    2999,
		PublicOrigin:        "http://localhost:3000",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.MigrateDB(db); err != nil {
		panic(err)
	}

	checkoutFake = &fakeCheckout{}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg, checkoutFake)
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	if err != nil {
		t.Fatal(err)
	}

	return user, token
}

func createCourse(t *testing.T, title string, lessons ...models.Lesson) models.Course {
	t.Helper()

	course := models.Course{Title: title, Description: "Test description"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatal(err)
	}

	for i := range lessons {
		lessons[i].CourseID = course.ID
		if err := db.Create(&lessons[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	return course
}

func grantPurchase(t *testing.T, userID uint, courseID string) {
	t.Helper()

	purchase := models.Purchase{
		UserID:          userID,
		CourseID:        courseID,
		StripeSessionID: "cs_seed_" + uuid.NewString(),
	}
	if err := db.Create(&purchase).Error; err != nil {
		t.Fatal(err)
	}
}

func purchaseCount(t *testing.T, userID uint, courseID string) int64 {
	t.Helper()

	var count int64
	db.Model(&models.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)
	return count
}

func uniqueEmail() string {
	return uuid.NewString()[:8] + "@example.com"
}

func doJSON(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	return result
}
