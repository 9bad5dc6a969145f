package core

import (
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/wansing/blog/config"
	"github.com/wansing/blog/util"
)

// CoreDB bundles the stores and the shared services. It is passed to the routers.
type CoreDB struct {
	PostDB
	RoleDB
	UserDB
	Config         *config.Config
	Copy           *Copy
	SessionManager *scs.SessionManager

	validate *validator.Validate
}

// Init sets up sessions, copy and validation. If sessionStore is nil, sessions are kept in memory.
func (c *CoreDB) Init(sessionStore scs.Store) error {

	if c.Config == nil {
		c.Config = config.Default()
	}

	if c.Config.SecretKey == "" {
		var err error
		c.Config.SecretKey, err = util.RandomString32()
		if err != nil {
			return err
		}
		log.Println("generating random secret key, sessions and forms won't survive a restart")
	}

	var err error
	c.Copy, err = NewCopy(c.Config.Lang, c.Config.Messages)
	if err != nil {
		return err
	}

	c.SessionManager = scs.New()
	if sessionStore != nil {
		c.SessionManager.Store = sessionStore
	}
	c.SessionManager.Cookie.Name = "blog_session"
	c.SessionManager.Cookie.Path = c.Config.Base + "/"
	c.SessionManager.Cookie.Persist = false                 // don't store the cookie across browser sessions
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // forms are protected by CSRF tokens in addition
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour

	c.validate = newValidator()

	return nil
}
