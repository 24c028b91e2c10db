package controllers

import (
	"log"
	"net/http"
	"strings"

	"techmastery/config"
	"techmastery/db"
	"techmastery/middlewares"
	"techmastery/services"
	"techmastery/structs"
	"techmastery/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const oauthStateCookie = "tm_oauth_state"

var (
	sessionStore   services.SessionStore
	oauthConfig    *oauth2.Config
	frontendOrigin string
	sessionMaxAge  int
)

// InitAuth wires the session store and OAuth client used by the auth handlers
func InitAuth(cfg *config.Config, store services.SessionStore) {
	sessionStore = store
	frontendOrigin = cfg.Server.FrontendOrigin
	sessionMaxAge = int(config.Duration(cfg.Session.TTL, 0).Seconds())
	oauthConfig = &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLogin redirects the browser to the Google consent screen
func GoogleLogin(ctx *gin.Context) {
	state := uuid.NewString()
	ctx.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect, oauthConfig.AuthCodeURL(state))
}

// GoogleCallback completes the OAuth handshake, resolves the user and opens a session
func GoogleCallback(ctx *gin.Context) {
	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || ctx.Query("state") != state {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := oauthConfig.Exchange(ctx.Request.Context(), code)
	if err != nil {
		log.Printf("OAuth code exchange failed: %v", err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	client := oauthConfig.Client(ctx.Request.Context(), token)
	svc, err := goauth2.NewService(ctx.Request.Context(), option.WithHTTPClient(client))
	if err != nil {
		log.Printf("Failed to create userinfo service: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		log.Printf("Failed to fetch userinfo: %v", err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	name := info.Name
	if name == "" {
		name = utils.ExtractNameFromEmail(info.Email)
	}
	user, err := db.ResolveUserByGoogleID(ctx.Request.Context(), db.GoogleProfile{
		SubjectID: info.Id,
		Email:     info.Email,
		Name:      name,
		Avatar:    utils.AvatarOrFallback(info.Picture, name),
	})
	if err != nil {
		log.Printf("Failed to resolve OAuth user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := openSession(ctx, user.ID.Hex()); err != nil {
		return
	}
	ctx.Redirect(http.StatusFound, frontendOrigin+"/dashboard")
}

// SimpleLogin resolves a user by nickname, creating the record on first sight
func SimpleLogin(ctx *gin.Context) {
	var request structs.SimpleLoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	nickname := strings.TrimSpace(request.Nickname)
	if nickname == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nickname required"})
		return
	}

	user, err := db.ResolveUserByNickname(ctx.Request.Context(), nickname, utils.AvatarOrFallback("", nickname))
	if err != nil {
		log.Printf("Failed to resolve user %q: %v", nickname, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if err := openSession(ctx, user.ID.Hex()); err != nil {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout destroys the session and clears the cookie
func Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middlewares.SessionCookieName); err == nil {
		if err := sessionStore.Destroy(ctx.Request.Context(), token); err != nil {
			log.Printf("Failed to destroy session: %v", err)
		}
	}
	ctx.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, frontendOrigin+"/")
}

// CurrentUser returns the user bound to the session
func CurrentUser(ctx *gin.Context) {
	userID := ctx.GetString("userID")
	user, err := db.FindUserByID(ctx.Request.Context(), userID)
	if err == db.ErrUserNotFound {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func openSession(ctx *gin.Context, userID string) error {
	token, err := sessionStore.Create(ctx.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return err
	}
	ctx.SetCookie(middlewares.SessionCookieName, token, sessionMaxAge, "/", "", false, true)
	return nil
}
