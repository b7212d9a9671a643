package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/infrastructure/logger"
	"ig-dashboard/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Gin context keys populated by Session.
const (
	KeySession     = "session"
	KeySessionID   = "session_id"
	KeyUserID      = "user_id"
	KeyInstagramID = "instagram_id"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// SessionClaims is the payload of the session cookie. The session id is the
// only state carried client side.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// CookieCodec signs and verifies the session cookie.
type CookieCodec struct {
	Name   string
	Secure bool
	secret []byte
}

func NewCookieCodec(name, secret string, secure bool) *CookieCodec {
	return &CookieCodec{Name: name, Secure: secure, secret: []byte(secret)}
}

func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode returns the session id of a valid cookie value.
func (c *CookieCodec) Decode(raw string) (string, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session cookie")
	}
	return claims.SessionID, nil
}

// SetCookie writes the signed, HTTP-only session cookie.
func (c *CookieCodec) SetCookie(ctx *gin.Context, sess *model.Session) error {
	value, err := c.Encode(sess.ID, sess.ExpiresAt)
	if err != nil {
		return err
	}
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, value, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *CookieCodec) ClearCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Name, "", -1, "/", "", c.Secure, true)
}

// Session resolves the cookie into a server-side session. Missing, tampered
// or expired cookies leave the request anonymous.
func Session(sessions usecase.ISessionUseCase, codec *CookieCodec) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, err := ctx.Cookie(codec.Name)
		if err != nil || raw == "" {
			ctx.Next()
			return
		}
		sid, err := codec.Decode(raw)
		if err != nil {
			logger.GetLogger().WithField("error", err).Debug("Ignoring invalid session cookie")
			ctx.Next()
			return
		}
		sess, err := sessions.Get(ctx.Request.Context(), sid)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed to load session")
		}
		if sess != nil {
			ctx.Set(KeySession, sess)
			ctx.Set(KeySessionID, sess.ID)
			ctx.Set(KeyUserID, sess.UserID)
			ctx.Set(KeyInstagramID, sess.InstagramID)
		}
		ctx.Next()
	}
}

// RequireAuth rejects requests that Session left anonymous.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if CurrentSession(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		ctx.Next()
	}
}

// CurrentSession returns the session loaded by Session, or nil.
func CurrentSession(ctx *gin.Context) *model.Session {
	v, ok := ctx.Get(KeySession)
	if !ok {
		return nil
	}
	sess, _ := v.(*model.Session)
	return sess
}
