package frontend

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
)

var loginTmpl = tmpl(`<h1>Login</h1>

	{{ with .FormError }}
		<div class="alert alert-danger" role="alert">{{ . }}</div>
	{{ end }}

	<form method="post" style="max-width: 20rem; margin: auto;">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<label>E-Mail</label>
			<input type="email" class="form-control" name="email" value="{{ .Email }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Email     string
	FormError string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if ctx.LoggedIn() {
		ctx.Redirect("/")
		return nil
	}

	var data = &loginData{
		context: ctx,
	}

	if req.Method == http.MethodPost {

		data.Email = req.PostFormValue("email") // keep POST data for email field

		if err := ctx.CheckCSRF(); err != nil {
			data.FormError = ctx.Messages.Get("csrf-invalid")
			return ctx.Render(loginTmpl, data)
		}

		err := ctx.Login(data.Email, req.PostFormValue("password"))
		switch {
		case err == nil:
			ctx.Redirect("/")
			return nil
		case errors.Is(err, auth.ErrAuth):
			data.FormError = ctx.Messages.Get("login-failed")
		default:
			return err
		}
	}

	return ctx.Render(loginTmpl, data)
}

func logout(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {
	if err := ctx.Logout(); err != nil {
		return err
	}
	ctx.Success("%s", ctx.Messages.Get("logged-out"))
	ctx.Redirect("/")
	return nil
}
