package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skillflip/internal/database"
	"skillflip/internal/domain"
	"skillflip/internal/middleware"
	"skillflip/internal/modules/admin"
	"skillflip/internal/modules/availability"
	"skillflip/internal/modules/booking"
	"skillflip/internal/modules/catalog"
	"skillflip/internal/modules/event"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/modules/review"
	jwtsvc "skillflip/internal/pkg/jwt"
	"skillflip/internal/repository"
)

// Every suite runs against the same frozen clock so slot math and event
// cutoffs do not depend on when the tests execute. 2026-02-23 is a Monday;
// bookings target the following Monday, 2026-03-02.
var (
	testNow    = time.Date(2026, time.February, 23, 12, 0, 0, 0, time.UTC)
	sessionDay = "2026-03-02"
)

func testClock() time.Time { return testNow }

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	skillRepo := repository.NewSkillRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	eventRepo := repository.NewEventRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	userRepo := repository.NewUserRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	pricingService := pricing.NewService()
	pricingHandler := pricing.NewHandler(pricingService)

	catalogService := catalog.NewService(skillRepo, categoryRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	availabilityService := availability.NewService(availabilityRepo, bookingRepo, testClock)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(bookingRepo, skillRepo, availabilityService, pricingService, nil, testClock)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	eventService := event.NewService(eventRepo, testClock)
	eventHandler := event.NewHandler(eventService)

	adminService := admin.NewService(skillRepo, bookingRepo, reviewRepo, userRepo)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	public := v1.Group("/")
	public.Use(middleware.OptionalJWTAuth(jwtService))
	{
		pricingHandler.RegisterRoutes(public)
		catalogHandler.RegisterPublicRoutes(public)
		availabilityHandler.RegisterPublicRoutes(public)
		reviewHandler.RegisterPublicRoutes(public)
		eventHandler.RegisterPublicRoutes(public)
	}

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		catalogHandler.RegisterProtectedRoutes(protected)
		availabilityHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		reviewHandler.RegisterProtectedRoutes(protected)
		eventHandler.RegisterProtectedRoutes(protected)
	}

	adminGroup := v1.Group("/")
	adminGroup.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
	{
		adminHandler.RegisterRoutes(adminGroup)
		catalogHandler.RegisterAdminRoutes(adminGroup)
		eventHandler.RegisterAdminRoutes(adminGroup)
	}

	internal := v1.Group("/internal")
	internal.Use(middleware.InternalTokenAuth())
	{
		bookingHandler.RegisterInternalRoutes(internal)
	}

	ctx := context.Background()
	seedUsers := []*domain.User{
		{ID: "admin-1", Email: "admin@test.local", FirstName: "Ada", Role: domain.RoleAdmin},
		{ID: "creator-1", Email: "creator@test.local", FirstName: "Casey", Role: domain.RoleCreator},
		{ID: "learner-1", Email: "learner1@test.local", FirstName: "Lee", Role: domain.RoleLearner},
		{ID: "learner-2", Email: "learner2@test.local", FirstName: "Lou", Role: domain.RoleLearner},
	}
	for _, u := range seedUsers {
		require.NoError(t, userRepo.Upsert(ctx, u), "Failed to seed user %s", u.ID)
	}

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) token(t *testing.T, userID, role string) string {
	token, err := s.jwtService.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "raw body: %s", w.Body.String())
	return &resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	resp := parseResponse(t, w)
	require.NotNil(t, resp.Error, "expected an error envelope, got: %s", w.Body.String())
	return resp.Error.Code
}

// seedBookableSkill walks the moderation pipeline: admin creates a category,
// the creator lists a skill, the admin approves it, and the creator opens a
// Monday morning window. Returns the skill id.
func (s *E2ETestSuite) seedBookableSkill(t *testing.T) int64 {
	adminToken := s.token(t, "admin-1", "admin")
	creatorToken := s.token(t, "creator-1", "creator")

	w := s.makeRequest(t, "POST", "/api/v1/categories", map[string]interface{}{
		"name": "Cooking",
		"slug": "cooking",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "category create failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	categoryID := int64(resp.Data["category"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest(t, "POST", "/api/v1/skills", map[string]interface{}{
		"title":        "Sourdough from scratch",
		"description":  "Starter care, shaping, and troubleshooting dense crumb.",
		"category_id":  categoryID,
		"price":        45.0,
		"duration":     60,
		"session_type": "both",
	}, creatorToken)
	require.Equal(t, http.StatusCreated, w.Code, "skill create failed: %s", w.Body.String())
	resp = parseResponse(t, w)
	skillID := int64(resp.Data["skill"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/admin/skills/%d/approve", skillID),
		map[string]interface{}{"value": true}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, "skill approve failed: %s", w.Body.String())

	w = s.makeRequest(t, "PUT", "/api/v1/creators/creator-1/availability", map[string]interface{}{
		"windows": []map[string]interface{}{
			{"day_of_week": 1, "start_time": "09:00", "end_time": "12:00", "is_available": true},
		},
	}, creatorToken)
	require.Equal(t, http.StatusOK, w.Code, "availability update failed: %s", w.Body.String())

	return skillID
}

func (s *E2ETestSuite) createBooking(t *testing.T, learnerToken string, skillID int64, start string) *httptest.ResponseRecorder {
	return s.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
		"skill_id":     skillID,
		"session_date": start,
		"session_type": "virtual",
	}, learnerToken)
}

func bookingField(t *testing.T, w *httptest.ResponseRecorder, field string) interface{} {
	resp := parseResponse(t, w)
	b, ok := resp.Data["booking"].(map[string]interface{})
	require.True(t, ok, "no booking in response: %s", w.Body.String())
	return b[field]
}

func slotStarts(t *testing.T, w *httptest.ResponseRecorder) []string {
	resp := parseResponse(t, w)
	raw, ok := resp.Data["slots"].([]interface{})
	require.True(t, ok, "no slots in response: %s", w.Body.String())

	starts := make([]string, 0, len(raw))
	for _, s := range raw {
		starts = append(starts, s.(map[string]interface{})["start"].(string))
	}
	return starts
}

func TestBookingLifecycle(t *testing.T) {
	s := setupTestSuite(t)
	skillID := s.seedBookableSkill(t)

	learner1 := s.token(t, "learner-1", "learner")
	learner2 := s.token(t, "learner-2", "learner")
	creator := s.token(t, "creator-1", "creator")

	// The 09:00-12:00 Monday window yields five 60-minute slots.
	w := s.makeRequest(t, "GET", "/api/v1/creators/creator-1/slots?date="+sessionDay, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{
		"2026-03-02T09:00:00+00:00",
		"2026-03-02T09:30:00+00:00",
		"2026-03-02T10:00:00+00:00",
		"2026-03-02T10:30:00+00:00",
		"2026-03-02T11:00:00+00:00",
	}, slotStarts(t, w))

	// Book 10:00. Pricing: $45/h for 60 min, 25% platform fee.
	w = s.createBooking(t, learner1, skillID, "2026-03-02T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, "booking failed: %s", w.Body.String())
	assert.Equal(t, "pending", bookingField(t, w, "status"))
	assert.Equal(t, "pending", bookingField(t, w, "payment_status"))
	assert.Equal(t, 45.0, bookingField(t, w, "total_amount"))
	assert.Equal(t, 11.25, bookingField(t, w, "platform_fee"))
	assert.Equal(t, 33.75, bookingField(t, w, "creator_earnings"))
	bookingID := int64(bookingField(t, w, "id").(float64))

	// Same slot again, different learner: rejected.
	w = s.createBooking(t, learner2, skillID, "2026-03-02T10:00:00Z")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_UNAVAILABLE", errorCode(t, w))

	// The booked hour swallows the three overlapping starts.
	w = s.makeRequest(t, "GET", "/api/v1/creators/creator-1/slots?date="+sessionDay, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{
		"2026-03-02T09:00:00+00:00",
		"2026-03-02T11:00:00+00:00",
	}, slotStarts(t, w))

	// The back-to-back 11:00 slot is still fine.
	w = s.createBooking(t, learner2, skillID, "2026-03-02T11:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, "adjacent booking failed: %s", w.Body.String())

	// Learners cannot confirm; creators can.
	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]interface{}{"status": "confirmed"}, learner1)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]interface{}{"status": "confirmed"}, creator)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", bookingField(t, w, "status"))

	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]interface{}{"status": "completed"}, creator)
	require.Equal(t, http.StatusOK, w.Code)

	// Completed sessions can be reviewed, exactly once.
	w = s.makeRequest(t, "POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     5,
		"comment":    "Finally got an open crumb.",
	}, learner1)
	require.Equal(t, http.StatusCreated, w.Code, "review failed: %s", w.Body.String())

	w = s.makeRequest(t, "POST", "/api/v1/reviews", map[string]interface{}{
		"booking_id": bookingID,
		"rating":     4,
	}, learner1)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_REVIEWED", errorCode(t, w))

	w = s.makeRequest(t, "GET", "/api/v1/creators/creator-1/rating", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	rating := parseResponse(t, w).Data["rating"].(map[string]interface{})
	assert.Equal(t, 5.0, rating["average"])
	assert.Equal(t, 1.0, rating["count"])
}

func TestCancellationFreesSlot(t *testing.T) {
	s := setupTestSuite(t)
	skillID := s.seedBookableSkill(t)

	learner1 := s.token(t, "learner-1", "learner")
	learner2 := s.token(t, "learner-2", "learner")

	w := s.createBooking(t, learner1, skillID, "2026-03-02T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(bookingField(t, w, "id").(float64))

	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
		map[string]interface{}{"status": "cancelled"}, learner1)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", bookingField(t, w, "status"))
	assert.NotNil(t, bookingField(t, w, "cancelled_at"))

	w = s.makeRequest(t, "GET", "/api/v1/creators/creator-1/slots?date="+sessionDay, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, slotStarts(t, w), "2026-03-02T10:00:00+00:00")

	w = s.createBooking(t, learner2, skillID, "2026-03-02T10:00:00Z")
	assert.Equal(t, http.StatusCreated, w.Code, "rebooking a freed slot failed: %s", w.Body.String())
}

func TestBookingValidationErrors(t *testing.T) {
	s := setupTestSuite(t)
	skillID := s.seedBookableSkill(t)
	learner := s.token(t, "learner-1", "learner")

	// Unauthenticated requests never reach the service.
	w := s.createBooking(t, "", skillID, "2026-03-02T10:00:00Z")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.createBooking(t, learner, 99999, "2026-03-02T10:00:00Z")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SKILL_NOT_FOUND", errorCode(t, w))

	w = s.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
		"skill_id":     skillID,
		"session_date": "2026-03-02T10:00:00Z",
		"session_type": "virtual",
		"duration":     45,
	}, learner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DURATION", errorCode(t, w))

	// Tuesday has no window.
	w = s.createBooking(t, learner, skillID, "2026-03-03T10:00:00Z")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_UNAVAILABLE", errorCode(t, w))

	// 11:30 start would run past the 12:00 close.
	w = s.createBooking(t, learner, skillID, "2026-03-02T11:30:00Z")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLOT_UNAVAILABLE", errorCode(t, w))

	// Creators cannot book themselves.
	w = s.createBooking(t, s.token(t, "creator-1", "creator"), skillID, "2026-03-02T10:00:00Z")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSkillModerationVisibility(t *testing.T) {
	s := setupTestSuite(t)

	adminToken := s.token(t, "admin-1", "admin")
	creatorToken := s.token(t, "creator-1", "creator")

	w := s.makeRequest(t, "POST", "/api/v1/categories", map[string]interface{}{
		"name": "Music",
		"slug": "music",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := int64(parseResponse(t, w).Data["category"].(map[string]interface{})["id"].(float64))

	w = s.makeRequest(t, "POST", "/api/v1/skills", map[string]interface{}{
		"title":        "Guitar for beginners",
		"description":  "First chords and a song by the end of session one.",
		"category_id":  categoryID,
		"price":        40.0,
		"duration":     30,
		"session_type": "virtual",
	}, creatorToken)
	require.Equal(t, http.StatusCreated, w.Code)
	skillID := int64(parseResponse(t, w).Data["skill"].(map[string]interface{})["id"].(float64))

	skillPath := fmt.Sprintf("/api/v1/skills/%d", skillID)

	// Pending skills are invisible to strangers but not to their owner.
	w = s.makeRequest(t, "GET", skillPath, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.makeRequest(t, "GET", skillPath, nil, s.token(t, "learner-1", "learner"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.makeRequest(t, "GET", skillPath, nil, creatorToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Moderation surface: pending list, then approve.
	w = s.makeRequest(t, "GET", "/api/v1/admin/skills/pending", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	pending := parseResponse(t, w).Data["skills"].([]interface{})
	require.Len(t, pending, 1)

	w = s.makeRequest(t, "GET", "/api/v1/admin/skills/pending", nil, creatorToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.makeRequest(t, "PATCH", fmt.Sprintf("/api/v1/admin/skills/%d/approve", skillID),
		map[string]interface{}{"value": true}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.makeRequest(t, "GET", skillPath, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentWebhook(t *testing.T) {
	t.Setenv("INTERNAL_API_TOKEN", "e2e-internal-token")

	s := setupTestSuite(t)
	skillID := s.seedBookableSkill(t)

	w := s.createBooking(t, s.token(t, "learner-1", "learner"), skillID, "2026-03-02T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(bookingField(t, w, "id").(float64))

	paymentPath := fmt.Sprintf("/api/v1/internal/bookings/%d/payment-status", bookingID)

	// User JWTs do not open the internal surface.
	w = s.makeRequest(t, "PATCH", paymentPath,
		map[string]interface{}{"payment_status": "paid"}, s.token(t, "admin-1", "admin"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.makeRequest(t, "PATCH", paymentPath,
		map[string]interface{}{"payment_status": "paid"}, "e2e-internal-token")
	require.Equal(t, http.StatusOK, w.Code, "webhook failed: %s", w.Body.String())
	assert.Equal(t, "paid", bookingField(t, w, "payment_status"))

	// paid -> pending is not a legal payment transition.
	w = s.makeRequest(t, "PATCH", paymentPath,
		map[string]interface{}{"payment_status": "pending"}, "e2e-internal-token")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", errorCode(t, w))
}

func TestPricingQuote(t *testing.T) {
	s := setupTestSuite(t)

	w := s.makeRequest(t, "GET", "/api/v1/pricing/quote?rate=45&duration=60", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	quote := parseResponse(t, w).Data["quote"].(map[string]interface{})
	assert.Equal(t, 45.0, quote["total_amount"])
	assert.Equal(t, 11.25, quote["platform_fee"])
	assert.Equal(t, 33.75, quote["creator_earnings"])

	w = s.makeRequest(t, "GET", "/api/v1/pricing/quote?rate=45&duration=45", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventRegistration(t *testing.T) {
	s := setupTestSuite(t)

	adminToken := s.token(t, "admin-1", "admin")
	learner := s.token(t, "learner-1", "learner")

	w := s.makeRequest(t, "POST", "/api/v1/events", map[string]interface{}{
		"title":         "Community skill swap",
		"description":   "Bring a skill, leave with a new one.",
		"event_date":    testNow.AddDate(0, 0, 14).Format(time.RFC3339),
		"location":      "Central Library",
		"max_attendees": 2,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "event create failed: %s", w.Body.String())
	eventID := int64(parseResponse(t, w).Data["event"].(map[string]interface{})["id"].(float64))

	registerPath := fmt.Sprintf("/api/v1/events/%d/register", eventID)

	w = s.makeRequest(t, "POST", registerPath, nil, learner)
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())
	reg := parseResponse(t, w).Data["registration"].(map[string]interface{})
	assert.Equal(t, "paid", reg["payment_status"]) // free event

	w = s.makeRequest(t, "POST", registerPath, nil, learner)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_REGISTERED", errorCode(t, w))

	// Fill the last seat, then the next registrant bounces.
	w = s.makeRequest(t, "POST", registerPath, nil, s.token(t, "learner-2", "learner"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.makeRequest(t, "POST", registerPath, nil, s.token(t, "creator-1", "creator"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EVENT_FULL", errorCode(t, w))
}

func TestAdminStats(t *testing.T) {
	s := setupTestSuite(t)
	skillID := s.seedBookableSkill(t)

	w := s.createBooking(t, s.token(t, "learner-1", "learner"), skillID, "2026-03-02T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.makeRequest(t, "GET", "/api/v1/admin/stats", nil, s.token(t, "admin-1", "admin"))
	require.Equal(t, http.StatusOK, w.Code, "stats failed: %s", w.Body.String())
	stats := parseResponse(t, w).Data["stats"].(map[string]interface{})
	assert.Equal(t, 4.0, stats["total_users"])
	assert.Equal(t, 1.0, stats["total_skills"])
	assert.Equal(t, 1.0, stats["total_bookings"])

	w = s.makeRequest(t, "GET", "/api/v1/admin/stats", nil, s.token(t, "learner-1", "learner"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
