package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionName = "encuentro-session"

	userIDKey      = "user_id"
	sessionCtxKey  = "session"
	currentUserKey = "current_user"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

var flashCategories = []string{FlashSuccess, FlashError, FlashInfo}

type Flash struct {
	Category string
	Message  string
}

// UserLoader resolves the signed-in user on every request.
type UserLoader interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// NewSessionStore builds the cookie store. An empty key yields a random one,
// which signs everyone out on restart and is only suitable for development.
func NewSessionStore(key string, secure bool, maxAge int, log *zap.Logger) (*sessions.CookieStore, error) {
	keyBytes := []byte(key)
	if len(keyBytes) == 0 {
		keyBytes = securecookie.GenerateRandomKey(32)
		if keyBytes == nil {
			return nil, errors.New("could not generate a session key")
		}
		log.Warn("SESSION_KEY not set; using a random key for this process")
	} else if len(keyBytes) < 32 {
		log.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(keyBytes)))
	}

	store := sessions.NewCookieStore(keyBytes)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

// LoadSessionUser attaches the session to the request and, when it carries a
// user id, the freshly loaded user. It never rejects a request; use
// RequireSignedIn for that.
func LoadSessionUser(store sessions.Store, users UserLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, SessionName)
		if err != nil {
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				log.Debug("session cookie invalid, using fresh session", zap.Error(err))
			} else {
				log.Warn("session store error, using fresh session", zap.Error(err))
			}
		}
		if sess == nil {
			sess = sessions.NewSession(store, SessionName)
		}
		c.Set(sessionCtxKey, sess)

		raw, ok := sess.Values[userIDKey]
		if !ok {
			c.Next()
			return
		}

		id, err := helpers.ParseUserID(raw)
		if err != nil {
			delete(sess.Values, userIDKey)
			c.Next()
			return
		}

		user, err := users.GetUser(c.Request.Context(), id)
		switch {
		case err == nil:
			SetCurrentUser(c, user)
		case errors.Is(err, service.ErrUserNotFound):
			delete(sess.Values, userIDKey)
			saveSession(c, sess, log)
		default:
			log.Error("load session user failed", zap.String("user_id", id.String()), zap.Error(err))
		}
		c.Next()
	}
}

// RequireSignedIn redirects anonymous visitors to the login page and
// remembers where they were going.
func RequireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		AddFlash(c, FlashInfo, "Inicia sesión para continuar.")
		c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func Session(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*sessions.Session)
	return sess
}

// SignIn stores the user id in the session cookie.
func SignIn(c *gin.Context, user *models.User) error {
	sess := Session(c)
	if sess == nil {
		return errors.New("session middleware not installed")
	}
	sess.Values[userIDKey] = user.ID.String()
	SetCurrentUser(c, user)
	return sess.Save(c.Request, c.Writer)
}

func SignOut(c *gin.Context) error {
	sess := Session(c)
	if sess == nil {
		return nil
	}
	delete(sess.Values, userIDKey)
	c.Set(currentUserKey, (*models.User)(nil))
	return sess.Save(c.Request, c.Writer)
}

// AddFlash queues a one-shot message for the next rendered page and saves
// the session, so call it before writing the response.
func AddFlash(c *gin.Context, category, message string) {
	sess := Session(c)
	if sess == nil {
		return
	}
	sess.AddFlash(message, "flash_"+category)
	_ = sess.Save(c.Request, c.Writer)
}

// Flashes drains queued messages in category order.
func Flashes(c *gin.Context) []Flash {
	sess := Session(c)
	if sess == nil {
		return nil
	}
	var out []Flash
	for _, category := range flashCategories {
		for _, v := range sess.Flashes("flash_" + category) {
			if msg, ok := v.(string); ok {
				out = append(out, Flash{Category: category, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save(c.Request, c.Writer)
	}
	return out
}

func saveSession(c *gin.Context, sess *sessions.Session, log *zap.Logger) {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Warn("save session failed", zap.Error(err))
	}
}
