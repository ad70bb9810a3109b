package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/plantdiary/internal/db"
	"github.com/plantdiary/internal/service"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
	userIDContextKey   = "__user_id"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Register 创建账号并直接登录
func (a *API) Register(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	user, err := a.users.Register(service.RegisterInput{
		Username: payload.Username,
		Password: payload.Password,
		Nickname: payload.Nickname,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			respondError(c, http.StatusConflict, "username already taken")
		case errors.Is(err, service.ErrInvalidUserInput):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondServerError(c, "failed to register", err)
		}
		return
	}

	a.startSession(c, http.StatusCreated, user)
}

// Login 校验账号密码，写入会话并签发 Bearer 令牌
func (a *API) Login(c *gin.Context) {
	var payload credentialsRequest
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	user, err := a.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondServerError(c, "failed to log in", err)
		return
	}

	a.startSession(c, http.StatusOK, user)
}

// Logout 清空会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondServerError(c, "failed to clear session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// Me 返回当前登录用户
func (a *API) Me(c *gin.Context) {
	user, err := a.users.Get(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusUnauthorized, "account no longer exists")
			return
		}
		respondServerError(c, "failed to load account", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userPayload(*user)})
}

// AuthRequired 接受 Bearer 令牌或会话 Cookie，两者都没有时返回 401
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
				c.Abort()
				return
			}
			userID, err := a.tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				respondError(c, http.StatusUnauthorized, "invalid or expired token")
				c.Abort()
				return
			}
			c.Set(userIDContextKey, userID)
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserIDKey).(uint)
		if !ok || userID == 0 {
			respondError(c, http.StatusUnauthorized, "login required")
			c.Abort()
			return
		}
		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func (a *API) startSession(c *gin.Context, status int, user *db.User) {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		respondServerError(c, "failed to save session", err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(user.ID)
	if err != nil {
		respondServerError(c, "failed to issue token", err)
		return
	}

	c.JSON(status, gin.H{
		"user":       userPayload(*user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// currentUserID 读取 AuthRequired 写入的用户 ID
func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDContextKey)
}

func userPayload(user db.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"nickname": user.Nickname,
	}
}
