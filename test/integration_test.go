package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"port-registry/config"
	"port-registry/handlers"
	"port-registry/middleware"
	"port-registry/models"
	"port-registry/repositories"
	"port-registry/services"
)

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	adminToken    string
	operatorToken string
	guardToken    string
}

func (suite *IntegrationTestSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		suite.T().Fatal("Failed to access test database:", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.db = db
	suite.setupRouter()

	suite.adminToken = suite.registerUser("port_chief", models.RoleAdmin)
	suite.operatorToken = suite.registerUser("ana_operator", models.RoleOperator)
	suite.guardToken = suite.registerUser("pepe_guard", models.RoleGuard)
}

func (suite *IntegrationTestSuite) setupRouter() {
	gin.SetMode(gin.TestMode)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	shipRepo := repositories.NewShipRepository(suite.db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	shipService := services.NewShipService(shipRepo)
	reportService := services.NewReportService(shipRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	shipHandler := handlers.NewShipHandler(shipService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// Setup router
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		public := v1.Group("/public")
		{
			public.GET("/home", dashboardHandler.Home)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.GET("/dashboard", dashboardHandler.Dashboard)

			ships := protected.Group("/ships")
			{
				ships.GET("", middleware.RequireGuardOrHigher(), shipHandler.ListShips)
				ships.GET("/:id", middleware.RequireGuardOrHigher(), shipHandler.GetShip)
				ships.POST("", middleware.RequireOperator(), shipHandler.CreateShip)
				ships.PUT("/:id", middleware.RequireOperator(), shipHandler.UpdateShip)
				ships.GET("/:id/delete", middleware.RequireAdmin(), shipHandler.ConfirmDeleteShip)
				ships.DELETE("/:id", middleware.RequireAdmin(), shipHandler.DeleteShip)
			}
		}
	}

	suite.router = router
}

func (suite *IntegrationTestSuite) registerUser(username string, role models.UserRole) string {
	w := suite.request(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@port.test",
		"password": "secret123",
		"role":     role,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	body := suite.decode(w)
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func (suite *IntegrationTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *IntegrationTestSuite) shipCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Ship{}).Count(&count).Error)
	return count
}

// The full lifecycle: admin registers a ship, a duplicate IMO is
// rejected, a guard can see but not touch, and only a confirmed admin
// delete removes the record.
func (suite *IntegrationTestSuite) TestShipLifecycleScenario() {
	shipPayload := map[string]interface{}{
		"name": "MSC Esperanza",
		"imo":  "9484525",
		"flag": "Panamá",
		"type": "cargo",
	}

	// Admin registers the ship.
	w := suite.request(http.MethodPost, "/api/v1/ships", suite.adminToken, shipPayload)
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/ships", w.Header().Get("Location"))

	registered := suite.shipCount()

	var ship models.Ship
	suite.Require().NoError(suite.db.Where("imo = ?", "9484525").First(&ship).Error)
	suite.Require().NotNil(ship.RegisteredByID)

	var registrar models.User
	suite.Require().NoError(suite.db.First(&registrar, *ship.RegisteredByID).Error)
	suite.Equal("port_chief", registrar.Username)

	// Operator tries the same IMO: validation error, store unchanged.
	dupPayload := map[string]interface{}{"name": "Impostor", "imo": "9484525"}
	w = suite.request(http.MethodPost, "/api/v1/ships", suite.operatorToken, dupPayload)
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())

	body := suite.decode(w)
	fields := body["code_message"].(map[string]interface{})
	suite.Contains(fields, "imo")
	suite.Equal(registered, suite.shipCount())

	// Guard cannot delete: redirected to home, record untouched.
	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.guardToken,
		map[string]interface{}{"confirm": true})
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.Equal(registered, suite.shipCount())

	// Guard can still view it.
	w = suite.request(http.MethodGet, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.guardToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Admin must confirm before deleting.
	w = suite.request(http.MethodGet, fmt.Sprintf("/api/v1/ships/%d/delete", ship.ID), suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.adminToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
	suite.Equal(registered, suite.shipCount())

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.adminToken,
		map[string]interface{}{"confirm": true})
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal(registered-1, suite.shipCount())

	// Gone for good.
	w = suite.request(http.MethodGet, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestGuardCannotCreate() {
	before := suite.shipCount()

	w := suite.request(http.MethodPost, "/api/v1/ships", suite.guardToken, map[string]interface{}{
		"name": "Forbidden",
		"imo":  "8800001",
	})
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
	suite.Equal(before, suite.shipCount())
}

func (suite *IntegrationTestSuite) TestGuardCannotEdit() {
	w := suite.request(http.MethodPost, "/api/v1/ships", suite.operatorToken, map[string]interface{}{
		"name": "Editable",
		"imo":  "8800002",
	})
	suite.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())

	var ship models.Ship
	suite.Require().NoError(suite.db.Where("imo = ?", "8800002").First(&ship).Error)

	w = suite.request(http.MethodPut, fmt.Sprintf("/api/v1/ships/%d", ship.ID), suite.guardToken,
		map[string]interface{}{"name": "Hijacked", "imo": "8800002"})
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/", w.Header().Get("Location"))

	var after models.Ship
	suite.Require().NoError(suite.db.First(&after, ship.ID).Error)
	suite.Equal("Editable", after.Name)
}

func (suite *IntegrationTestSuite) TestUnauthenticatedRedirectedToLogin() {
	w := suite.request(http.MethodGet, "/api/v1/ships", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("/login", w.Header().Get("Location"))
}

func (suite *IntegrationTestSuite) TestValidationErrorEchoesInput() {
	w := suite.request(http.MethodPost, "/api/v1/ships", suite.operatorToken, map[string]interface{}{
		"name": "No IMO Given",
	})
	suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())

	body := suite.decode(w)
	fields := body["code_message"].(map[string]interface{})
	suite.Contains(fields, "imo")

	data := body["data"].(map[string]interface{})
	submitted := data["submitted"].(map[string]interface{})
	suite.Equal("No IMO Given", submitted["name"])
}

func (suite *IntegrationTestSuite) TestDashboardPersonalCountByRole() {
	w := suite.request(http.MethodGet, "/api/v1/dashboard", suite.guardToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	body := suite.decode(w)
	data := body["data"].(map[string]interface{})
	_, present := data["my_registrations"]
	suite.False(present)

	w = suite.request(http.MethodGet, "/api/v1/dashboard", suite.operatorToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	body = suite.decode(w)
	data = body["data"].(map[string]interface{})
	suite.Contains(data, "total_ships")
	suite.Contains(data, "my_registrations")
}

func (suite *IntegrationTestSuite) TestPublicHome() {
	w := suite.request(http.MethodGet, "/api/v1/public/home", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	body := suite.decode(w)
	data := body["data"].(map[string]interface{})
	suite.Contains(data, "total_ships")
}

func (suite *IntegrationTestSuite) TestLoginFlow() {
	w := suite.request(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "pepe_guard",
		"password": "secret123",
	})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "pepe_guard",
		"password": "wrong-password",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
