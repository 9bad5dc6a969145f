package core

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/wansing/blog/auth"
	"golang.org/x/text/language"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

var monthNamesIt = strings.NewReplacer(
	"January", "gennaio",
	"February", "febbraio",
	"March", "marzo",
	"April", "aprile",
	"May", "maggio",
	"June", "giugno",
	"July", "luglio",
	"August", "agosto",
	"September", "settembre",
	"October", "ottobre",
	"November", "novembre",
	"December", "dicembre",
)

// A Request is created by CoreDB.NewRequest.
type Request struct {
	db       *CoreDB // unexported, so it can't be accessed in templates
	User     *User   // nil if not logged in
	Roles    auth.RoleSet
	Messages Messages

	// http
	writer  http.ResponseWriter
	request *http.Request

	statusWritten bool

	language language.Tag
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
// If an active user is logged in, it sets Request.User and Request.Roles.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) (*Request, error) {

	var req = &Request{
		db:      c,
		writer:  w,
		request: httpreq,
	}

	req.language, req.Messages = c.Copy.For(httpreq.Header.Get("Accept-Language"))

	if uid := c.SessionManager.GetInt(httpreq.Context(), "uid"); uid != 0 {
		u, err := c.GetUser(uid)
		switch {
		case err == nil && u.Active:
			req.User = u
		case err == nil, errors.Is(err, ErrNotFound):
			// deactivated or removed in the meantime
			c.SessionManager.Remove(httpreq.Context(), "uid")
		default:
			return req, err
		}
	}

	var err error
	req.Roles, err = c.RoleSetOf(req.User)
	return req, err
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "danger")
}

// Success adds a "success" notification to the session.
func (req *Request) Success(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "success")
}

// style should be a bootstrap alert style without the leading "alert-"
func (req *Request) addNotification(message, style string) {
	notifications, _ := req.db.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.db.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotifications removes all notifications from the session
// and renders them into an HTML string.
// If the HTTP status had already been written, it does nothing.
func (req *Request) RenderNotifications() template.HTML {
	var r string
	if !req.statusWritten {
		notifications, _ := req.db.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r += `<div class="alert alert-` + n.Style + ` mt-3" role="alert">` + template.HTMLEscapeString(n.Message) + `</div>`
		}
	}
	return template.HTML(r)
}

// Cleanup destroys the session (which means re-setting the cookie with zero lifetime) if the session has been modified and is empty now.
// It is called by Redirect, Render and Fail, because the session is saved before the first byte of the response is written.
func (req *Request) Cleanup() {
	sessMan := req.db.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// Redirect sets the HTTP header to redirect to an URL with status 302 Found.
func (req *Request) Redirect(format string, args ...interface{}) {
	if req.statusWritten {
		return
	}
	var url = fmt.Sprintf(format, args...)
	req.Cleanup()
	http.Redirect(req.writer, req.request, url, http.StatusFound)
	req.statusWritten = true
}

// Login tries to log in a user. On success, the user id is stored in a renewed session.
func (req *Request) Login(email string, enteredPass string) error {
	if req.LoggedIn() {
		return nil
	}
	u, err := req.db.LoginUser(email, enteredPass)
	if err != nil {
		return err // is auth.ErrAuth if email or enteredPass is wrong
	}
	roles, err := req.db.RoleSetOf(u)
	if err != nil {
		return err
	}
	if err := req.db.SessionManager.RenewToken(req.request.Context()); err != nil {
		return err
	}
	req.User = u
	req.Roles = roles
	req.db.SessionManager.Put(req.request.Context(), "uid", u.ID)
	req.Success(req.Messages.Get("logged-in"), u.Name())
	return nil
}

func (req *Request) LoggedIn() bool {
	return req.User != nil
}

// Logout removes the user id from a renewed session.
func (req *Request) Logout() error {
	if !req.LoggedIn() {
		return nil
	}
	if err := req.db.SessionManager.RenewToken(req.request.Context()); err != nil {
		return err
	}
	req.db.SessionManager.Remove(req.request.Context(), "uid")
	req.User = nil
	req.Roles = auth.NewRoleSet()
	return nil
}

// Require returns ErrForbidden if the guard doesn't let the request pass.
func (req *Request) Require(guard auth.Guard) error {
	if !guard.Allows(req.LoggedIn(), req.Roles) {
		return ErrForbidden
	}
	return nil
}

// Navigation returns the navigation bar for the current user, with the URL prefix applied to the links.
// It is built on every call.
func (req *Request) Navigation() []NavItem {
	return PrefixNav(Navigation(req.User, req.Roles), req.db.Config.Base)
}

// Href prepends the URL prefix to an absolute path.
func (req *Request) Href(path string) string {
	return req.db.Config.Base + path
}

// Lang returns the base language of the request, like "it" or "en".
func (req *Request) Lang() string {
	b, _ := req.language.Base()
	return b.String()
}

// FormatDateTime formats a unix timestamp in the language of the request.
func (req *Request) FormatDateTime(ts int64) string {
	var t = time.Unix(ts, 0)
	switch req.Lang() {
	case "it":
		return monthNamesIt.Replace(t.Format("2 January 2006 15:04"))
	default:
		return t.Format("January 2, 2006 3:04 PM")
	}
}

// Render executes a template into a buffer and writes the result.
// Buffering keeps session changes made during execution, because the session is saved before the first byte is written.
func (req *Request) Render(t *template.Template, data interface{}) error {
	if req.statusWritten {
		return nil
	}
	var buf = &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		return err
	}
	req.statusWritten = true
	req.Cleanup()
	req.writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(req.writer) // client has gone away
	return nil
}

var errorTmpl = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<title>{{ . }}</title>
	</head>
	<body>
		<p>{{ . }}</p>
	</body>
</html>`))

// Fail writes an error page. Errors which map to 500 are logged, their details are not shown.
func (req *Request) Fail(err error) {

	var status = StatusCode(err)
	var key string
	switch status {
	case http.StatusForbidden:
		key = "forbidden"
	case http.StatusNotFound:
		key = "not-found"
	default:
		key = "internal-error"
		log.Printf("%s %s: %v", req.request.Method, req.request.URL.Path, err)
	}

	if req.statusWritten {
		return
	}
	req.statusWritten = true
	req.Cleanup()

	req.writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	req.writer.WriteHeader(status)
	_ = errorTmpl.Execute(req.writer, req.Messages.Get(key))
}
