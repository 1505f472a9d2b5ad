package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	log "github.com/sirupsen/logrus"
)

// HandleToken handles the token endpoint for the password grant
// @Summary Token Endpoint
// @Description Obtain an access token with user credentials (OAuth2 password grant)
// @Tags OAuth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: password"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param username formData string true "User email"
// @Param password formData string true "User password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case "password":
		o.handlePassword(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGrantType})
	}
}

func (o *OAuthService) handlePassword(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	username := c.PostForm("username")
	password := c.PostForm("password")

	// Validate client
	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return
	}

	// Verify client secret against the stored bcrypt hash
	if !client.VerifyPassword(clientSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return
	}

	// Validate resource-owner credentials; username is the account email
	var user models.User
	if err := o.db.Where("email = ?", username).First(&user).Error; err != nil || !user.CheckPassword(password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidGrant})
		return
	}

	// Generate tokens using the OAuth2 server
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.PasswordCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserID:       strconv.FormatUint(uint64(user.ID), 10),
		Scope:        client.Scopes,
	})
	if err != nil {
		log.WithError(err).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  ti.GetAccess(),
		"refresh_token": ti.GetRefresh(),
		"token_type":    "Bearer",
		"expires_in":    int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":         ti.GetScope(),
	})
}

// HandleRevoke revokes the bearer token presented in the request (logout)
// @Summary Revoke Token
// @Description Revoke the access token presented in the Authorization header
// @Tags OAuth2
// @Produce json
// @Success 204
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /oauth/revoke [post]
func (o *OAuthService) HandleRevoke(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidRequest})
		return
	}

	access := strings.TrimPrefix(authHeader, "Bearer ")
	if err := o.server.Manager.RemoveAccessToken(c, access); err != nil {
		// Revoking an unknown token is not an error worth surfacing.
		log.WithError(err).Debug("Revoke of unknown access token")
	}

	c.JSON(http.StatusNoContent, nil)
}
