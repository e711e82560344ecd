package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lewishowell/yacht-provisioning/models"
)

// GoogleLogin starts the OAuth code flow with a state cookie.
func (a *API) GoogleLogin(c *gin.Context) {
	if a.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth is not configured"})
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	state := hex.EncodeToString(buf)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("oauth_state", state, 600, "/", "", a.cfg.IsProduction(), true)
	c.Redirect(http.StatusTemporaryRedirect, a.oauth.AuthCodeURL(state))
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, upserts the user, seeds
// demo data on first login, and hands the session token to the client.
func (a *API) GoogleCallback(c *gin.Context) {
	if a.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth is not configured"})
		return
	}

	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || c.Query("state") != state {
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=auth_failed")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", a.cfg.IsProduction(), true)

	token, err := a.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("OAuth exchange error: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=auth_failed")
		return
	}

	resp, err := a.oauth.Client(c.Request.Context(), token).
		Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Printf("OAuth userinfo error: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=auth_failed")
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.ID == "" {
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=no_user")
		return
	}

	user, firstLogin, err := a.upsertGoogleUser(info)
	if err != nil {
		log.Printf("OAuth upsert error: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=auth_failed")
		return
	}

	if firstLogin {
		if err := a.provisioner.SeedDemoData(user.ID); err != nil {
			log.Printf("demo seed failed for user %s: %v", user.ID, err)
		}
	}

	session, err := GenerateToken(user.ID, a.cfg.JWTSecret)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/login?error=auth_failed")
		return
	}

	a.setSessionCookie(c, session)
	// The client dev server proxies /api, so bounce through /session to get
	// the cookie onto the client origin as well.
	c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL+"/api/auth/session?token="+session)
}

func (a *API) upsertGoogleUser(info googleUserInfo) (*models.User, bool, error) {
	var user models.User
	err := a.db.Where("google_id = ?", info.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			GoogleID: info.ID,
			Email:    info.Email,
			Name:     info.Name,
		}
		if info.Picture != "" {
			user.AvatarURL = &info.Picture
		}
		if err := a.db.Create(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	updates := map[string]interface{}{"name": info.Name}
	if info.Picture != "" {
		updates["avatar_url"] = info.Picture
	}
	if err := a.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, false, err
	}
	return &user, false, nil
}

// Session sets the session cookie from a token handed over by the OAuth
// callback redirect, then sends the browser back to the client app.
func (a *API) Session(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}
	a.setSessionCookie(c, token)
	c.Redirect(http.StatusTemporaryRedirect, a.cfg.ClientURL)
}

func (a *API) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(sessionDuration.Seconds()), "/", "", a.cfg.IsProduction(), true)
}

// Me returns the authenticated user.
func (a *API) Me(c *gin.Context) {
	user, _ := c.Get("user")
	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie.
func (a *API) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", "", a.cfg.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// OnboardingSeen flags that the user dismissed the getting-started flow.
func (a *API) OnboardingSeen(c *gin.Context) {
	err := a.db.Model(&models.User{}).Where("id = ?", currentUserID(c)).
		Update("has_seen_onboarding", true).Error
	if err != nil {
		serviceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ClearSeedData wipes the user's inventory and lists, dropping the demo
// records created on first login.
func (a *API) ClearSeedData(c *gin.Context) {
	if err := a.provisioner.ClearUserData(currentUserID(c)); err != nil {
		serviceError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
