package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/dto"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"github.com/irisdash/dashboard-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	handler      *UserHandler
	tokenHandler *TokenHandler
}

// SetupTest runs before each test
func (suite *UserHandlerTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	tokenRepo := repository.NewTokenRepository(suite.db)
	suite.handler = NewUserHandler(services.NewUserService(userRepo))
	suite.tokenHandler = NewTokenHandler(services.NewTokenService(tokenRepo))

	gin.SetMode(gin.TestMode)
}

func (suite *UserHandlerTestSuite) createTestUser(username string, admin, originalAdmin bool) *models.User {
	user := &models.User{
		Username:        username,
		Email:           username + "@example.com",
		Name:            "Test " + username,
		PasswordHash:    "hashedpassword",
		IsAdmin:         admin,
		IsOriginalAdmin: originalAdmin,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)

	return c, w
}

func (suite *UserHandlerTestSuite) setAdmin(actor, target *models.User, admin bool) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]bool{"is_admin": admin})
	c, w := suite.createAuthContext(http.MethodPatch, "/api/users/1", body, actor)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(target.ID, 10)}}
	suite.handler.UpdateUser(c)
	return w
}

func (suite *UserHandlerTestSuite) TestPromoteGrantsAdmin() {
	original := suite.createTestUser("original", true, true)
	target := suite.createTestUser("target", false, false)

	w := suite.setAdmin(original, target, true)
	suite.Equal(http.StatusOK, w.Code)

	var updated models.User
	suite.Require().NoError(suite.db.First(&updated, target.ID).Error)
	suite.True(updated.IsAdmin)
	suite.False(updated.IsOriginalAdmin)
}

func (suite *UserHandlerTestSuite) TestPromoteExistingAdminForbidden() {
	original := suite.createTestUser("original", true, true)
	other := suite.createTestUser("other", true, false)

	w := suite.setAdmin(original, other, true)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *UserHandlerTestSuite) TestDemoteOriginalAdminForbidden() {
	original := suite.createTestUser("original", true, true)
	other := suite.createTestUser("other", true, false)

	// No actor may demote the original admin, not even another admin.
	w := suite.setAdmin(other, original, false)
	suite.Equal(http.StatusForbidden, w.Code)

	var unchanged models.User
	suite.Require().NoError(suite.db.First(&unchanged, original.ID).Error)
	suite.True(unchanged.IsAdmin)
}

func (suite *UserHandlerTestSuite) TestDemoteRegularAdmin() {
	original := suite.createTestUser("original", true, true)
	other := suite.createTestUser("other", true, false)

	w := suite.setAdmin(original, other, false)
	suite.Equal(http.StatusOK, w.Code)

	var updated models.User
	suite.Require().NoError(suite.db.First(&updated, other.ID).Error)
	suite.False(updated.IsAdmin)
}

func (suite *UserHandlerTestSuite) TestNonAdminCannotPromote() {
	suite.createTestUser("original", true, true)
	regular := suite.createTestUser("regular", false, false)
	target := suite.createTestUser("target", false, false)

	w := suite.setAdmin(regular, target, true)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *UserHandlerTestSuite) TestDeleteOriginalAdminForbidden() {
	original := suite.createTestUser("original", true, true)
	other := suite.createTestUser("other", true, false)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/users/1", nil, other)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(original.ID, 10)}}
	suite.handler.DeleteUser(c)
	suite.Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *UserHandlerTestSuite) TestDeleteUser() {
	original := suite.createTestUser("original", true, true)
	target := suite.createTestUser("target", false, false)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/users/1", nil, original)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(target.ID, 10)}}
	suite.handler.DeleteUser(c)
	c.Writer.WriteHeaderNow()
	suite.Equal(http.StatusNoContent, w.Code)

	var found models.User
	err := suite.db.First(&found, target.ID).Error
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *UserHandlerTestSuite) TestListOnlineUsers() {
	original := suite.createTestUser("original", true, true)
	online := suite.createTestUser("online", false, false)
	suite.createTestUser("offline", false, false)
	suite.Require().NoError(suite.db.Model(online).Update("is_online", true).Error)

	c, w := suite.createAuthContext(http.MethodGet, "/api/users/online", nil, original)
	suite.handler.ListOnlineUsers(c)
	suite.Equal(http.StatusOK, w.Code)

	var users []dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	suite.Require().Len(users, 1)
	suite.Equal("online", users[0].Username)
}

func (suite *UserHandlerTestSuite) TestListUsersRequiresAdmin() {
	suite.createTestUser("original", true, true)
	regular := suite.createTestUser("regular", false, false)

	c, w := suite.createAuthContext(http.MethodGet, "/api/users", nil, regular)
	suite.handler.ListUsers(c)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *UserHandlerTestSuite) TestProfilesVisibleToEveryone() {
	suite.createTestUser("original", true, true)
	regular := suite.createTestUser("regular", false, false)

	c, w := suite.createAuthContext(http.MethodGet, "/api/profiles", nil, regular)
	suite.handler.ListProfiles(c)
	suite.Equal(http.StatusOK, w.Code)

	var profiles []dto.ProfileDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &profiles))
	suite.Len(profiles, 2)
}

func (suite *UserHandlerTestSuite) TestUpdateOwnProfile() {
	suite.createTestUser("original", true, true)
	regular := suite.createTestUser("regular", false, false)

	body, _ := json.Marshal(map[string]string{
		"job_profile": "Backend engineer",
		"github":      "regular-gh",
	})
	c, w := suite.createAuthContext(http.MethodPut, "/api/profile", body, regular)
	suite.handler.UpdateProfile(c)
	suite.Equal(http.StatusOK, w.Code)

	var updated models.User
	suite.Require().NoError(suite.db.First(&updated, regular.ID).Error)
	suite.Equal("Backend engineer", updated.JobProfile)
	suite.Equal("regular-gh", updated.Github)
	suite.Equal("Test regular", updated.Name)
}

func (suite *UserHandlerTestSuite) TestMintAndDeleteToken() {
	original := suite.createTestUser("original", true, true)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tokens", nil, original)
	suite.tokenHandler.MintToken(c)
	suite.Equal(http.StatusCreated, w.Code)

	var minted dto.TokenDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &minted))
	suite.Len(minted.Token, constants.RegistrationTokenLength)

	c, w = suite.createAuthContext(http.MethodDelete, "/api/tokens/x", nil, original)
	c.Params = gin.Params{{Key: "token", Value: minted.Token}}
	suite.tokenHandler.DeleteToken(c)
	c.Writer.WriteHeaderNow()
	suite.Equal(http.StatusNoContent, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.RegistrationToken{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *UserHandlerTestSuite) TestDeleteUsedTokenConflicts() {
	original := suite.createTestUser("original", true, true)
	token := &models.RegistrationToken{Token: "USED1234", IsUsed: true, CreatedBy: original.ID}
	suite.Require().NoError(suite.db.Create(token).Error)

	c, w := suite.createAuthContext(http.MethodDelete, "/api/tokens/x", nil, original)
	c.Params = gin.Params{{Key: "token", Value: token.Token}}
	suite.tokenHandler.DeleteToken(c)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *UserHandlerTestSuite) TestMintTokenRequiresAdmin() {
	suite.createTestUser("original", true, true)
	regular := suite.createTestUser("regular", false, false)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tokens", nil, regular)
	suite.tokenHandler.MintToken(c)
	suite.Equal(http.StatusForbidden, w.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
