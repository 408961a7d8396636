package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doctorsportal/server/controllers"
	"github.com/doctorsportal/server/db"
	"github.com/doctorsportal/server/middleware"
	"github.com/doctorsportal/server/models"
	"github.com/doctorsportal/server/routes"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(database))

	app := fiber.New()
	routes.SetupOptionRoutes(app, controllers.NewOptionController(database, nil))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(database, nil, nil))
	routes.SetupUserRoutes(app, controllers.NewUserController(database), database)
	routes.SetupDoctorRoutes(app, controllers.NewDoctorController(database, nil), database)
	routes.SetupPaymentRoutes(app, controllers.NewPaymentController(database))
	return app, database
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret())
	require.NoError(t, err)
	return signed
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}

func seedUser(t *testing.T, database *gorm.DB, email, role string) {
	t.Helper()
	require.NoError(t, database.Create(&models.User{
		Name: "Test User", Email: email, Role: role,
	}).Error)
}

func seedOption(t *testing.T, database *gorm.DB, name string, price float64, slots ...string) {
	t.Helper()
	require.NoError(t, database.Create(&models.AppointmentOption{
		Name: name, Price: price, Slots: slots,
	}).Error)
}

// ----- options -----

func TestGetAppointmentOptions(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am", "10am", "11am")
	require.NoError(t, database.Create(&models.Booking{
		Ref: "r1", Email: "a@x.com", AppointmentDate: "2024-01-05",
		TreatmentName: "Cleaning", Slot: "10am",
	}).Error)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/appointmentOptions?date=2024-01-05", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var options []models.AppointmentOption
	decodeBody(t, resp, &options)
	require.Len(t, options, 1)
	assert.Equal(t, models.SlotList{"9am", "11am"}, options[0].Slots)
}

func TestGetSpecialties(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am")
	seedOption(t, database, "Surgery", 250, "1pm")

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/appointmentSpecialty", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var specialties []models.AppointmentOption
	decodeBody(t, resp, &specialties)
	require.Len(t, specialties, 2)
	assert.Equal(t, "Cleaning", specialties[0].Name)
	assert.Equal(t, "Surgery", specialties[1].Name)
}

// ----- bookings -----

func TestCreateBookingAndFetch(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am", "10am")
	seedUser(t, database, "a@x.com", "")

	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", fiber.Map{
		"email": "a@x.com", "patient_name": "Alice",
		"appointment_date": "2024-01-05", "treatment_name": "Cleaning", "slot": "9am",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Acknowledged bool           `json:"acknowledged"`
		InsertedID   uint           `json:"insertedId"`
		Booking      models.Booking `json:"booking"`
	}
	decodeBody(t, resp, &created)
	assert.True(t, created.Acknowledged)
	require.NotZero(t, created.InsertedID)
	assert.Equal(t, 60.0, created.Booking.Price)

	token := signToken(t, "a@x.com")
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/bookings/%d", created.InsertedID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var booking models.Booking
	decodeBody(t, resp, &booking)
	assert.Equal(t, "Cleaning", booking.TreatmentName)
}

func TestCreateBookingDuplicateRequester(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am", "10am")

	payload := fiber.Map{
		"email": "a@x.com", "appointment_date": "2024-01-05",
		"treatment_name": "Cleaning", "slot": "9am",
	}
	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", payload))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	payload["slot"] = "10am"
	resp = doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", payload))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Acknowledged bool   `json:"acknowledged"`
		Message      string `json:"message"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.Acknowledged)
	assert.Contains(t, body.Message, "2024-01-05")
}

func TestCreateBookingTakenSlot(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am")

	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", fiber.Map{
		"email": "a@x.com", "appointment_date": "2024-01-05",
		"treatment_name": "Cleaning", "slot": "9am",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", fiber.Map{
		"email": "b@x.com", "appointment_date": "2024-01-05",
		"treatment_name": "Cleaning", "slot": "9am",
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateBookingMissingFields(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/bookings", fiber.Map{
		"email": "a@x.com",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBookingsSelfOnly(t *testing.T) {
	app, database := newTestApp(t)
	require.NoError(t, database.Create(&models.Booking{
		Ref: "r1", Email: "a@x.com", AppointmentDate: "2024-01-05",
		TreatmentName: "Cleaning", Slot: "9am",
	}).Error)

	// No credential at all.
	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/bookings?email=a@x.com", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Someone else's email.
	req := httptest.NewRequest(http.MethodGet, "/bookings?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "b@x.com"))
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Own email.
	req = httptest.NewRequest(http.MethodGet, "/bookings?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "a@x.com"))
	resp = doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bookings []models.Booking
	decodeBody(t, resp, &bookings)
	require.Len(t, bookings, 1)
	assert.Equal(t, "a@x.com", bookings[0].Email)
}

func TestGetBookingNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/bookings/9999", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "a@x.com"))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ----- users & tokens -----

func TestIssueToken(t *testing.T) {
	app, database := newTestApp(t)
	seedUser(t, database, "known@x.com", "")

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/jwt?email=known@x.com", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.AccessToken)

	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/jwt?email=stranger@x.com", nil))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Empty(t, body.AccessToken)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	payload := fiber.Map{"name": "Alice", "email": "a@x.com"}
	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/users", payload))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, jsonRequest(http.MethodPost, "/users", payload))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateUserCannotSelfAssignAdmin(t *testing.T) {
	app, database := newTestApp(t)

	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/users", fiber.Map{
		"name": "Mallory", "email": "m@x.com", "role": "admin",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Where("email = ?", "m@x.com").First(&user).Error)
	assert.False(t, user.IsAdmin())
}

func TestCheckAdmin(t *testing.T) {
	app, database := newTestApp(t)
	seedUser(t, database, "boss@x.com", models.RoleAdmin)
	seedUser(t, database, "user@x.com", "")

	var body struct {
		IsAdmin bool `json:"isAdmin"`
	}

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/users/admin/boss@x.com", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.True(t, body.IsAdmin)

	resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/users/admin/user@x.com", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.False(t, body.IsAdmin)
}

// ----- authorization gating -----

func TestAdminGating(t *testing.T) {
	app, database := newTestApp(t)
	seedUser(t, database, "user@x.com", "")

	// No credential.
	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/doctors", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage credential.
	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Valid credential, role none.
	req = httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user@x.com"))
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Promote, then the same identity passes.
	require.NoError(t, database.Model(&models.User{}).
		Where("email = ?", "user@x.com").Update("role", models.RoleAdmin).Error)
	req = httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user@x.com"))
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExpiredTokenForbidden(t *testing.T) {
	app, _ := newTestApp(t)

	claims := jwt.MapClaims{
		"email": "user@x.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/bookings?email=user@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPromoteUser(t *testing.T) {
	app, database := newTestApp(t)
	seedUser(t, database, "boss@x.com", models.RoleAdmin)
	seedUser(t, database, "user@x.com", "")

	var target models.User
	require.NoError(t, database.Where("email = ?", "user@x.com").First(&target).Error)

	// Non-admin cannot promote.
	req := jsonRequest(http.MethodPut, fmt.Sprintf("/users/admin/%d", target.ID), nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user@x.com"))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin promotes.
	req = jsonRequest(http.MethodPut, fmt.Sprintf("/users/admin/%d", target.ID), nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "boss@x.com"))
	resp = doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, database.Where("email = ?", "user@x.com").First(&target).Error)
	assert.True(t, target.IsAdmin())

	// Unknown target id.
	req = jsonRequest(http.MethodPut, "/users/admin/9999", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "boss@x.com"))
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ----- doctors -----

func TestDoctorLifecycle(t *testing.T) {
	app, database := newTestApp(t)
	seedUser(t, database, "boss@x.com", models.RoleAdmin)
	token := signToken(t, "boss@x.com")

	req := jsonRequest(http.MethodPost, "/doctors", fiber.Map{
		"name": "Dr. Strange", "email": "strange@x.com", "specialty": "Oral Surgery",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, app, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var doctor models.Doctor
	decodeBody(t, resp, &doctor)
	require.NotZero(t, doctor.ID)

	req = httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doctors []models.Doctor
	decodeBody(t, resp, &doctors)
	require.Len(t, doctors, 1)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/doctors/%d", doctor.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/doctors/%d", doctor.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ----- payments -----

func TestCheckoutSessionRejectsBadItems(t *testing.T) {
	app, database := newTestApp(t)
	seedOption(t, database, "Cleaning", 60, "9am")

	resp := doRequest(t, app, jsonRequest(http.MethodPost, "/create-checkout-session", fiber.Map{
		"items": []fiber.Map{},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, jsonRequest(http.MethodPost, "/create-checkout-session", fiber.Map{
		"items": []fiber.Map{{"treatment": "Telepathy", "quantity": 1}},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
