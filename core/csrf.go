package core

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	csrfField    = "csrf_token"
	csrfLifetime = time.Hour
	csrfNonceKey = "csrf"
)

var ErrCSRF = errors.New("invalid CSRF token")

type csrfClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// CSRFField returns the name of the form field which carries the CSRF token.
func (req *Request) CSRFField() string {
	return csrfField
}

// CSRFToken returns a signed token which binds a form to the session.
// The session nonce is created on first use.
func (req *Request) CSRFToken() (string, error) {

	var ctx = req.request.Context()
	var nonce = req.db.SessionManager.GetString(ctx, csrfNonceKey)
	if nonce == "" {
		nonce = uuid.NewString()
		req.db.SessionManager.Put(ctx, csrfNonceKey, nonce)
	}

	var now = time.Now()
	var token = jwt.NewWithClaims(jwt.SigningMethodHS256, csrfClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(csrfLifetime)),
		},
	})
	return token.SignedString([]byte(req.db.Config.SecretKey))
}

// CheckCSRF validates the CSRF token of a submitted form. It always succeeds if CSRF protection is disabled.
func (req *Request) CheckCSRF() error {

	if !req.db.Config.CSRF {
		return nil
	}

	var nonce = req.db.SessionManager.GetString(req.request.Context(), csrfNonceKey)
	if nonce == "" {
		return ErrCSRF
	}

	var claims = &csrfClaims{}
	_, err := jwt.ParseWithClaims(
		req.request.PostFormValue(csrfField),
		claims,
		func(*jwt.Token) (interface{}, error) {
			return []byte(req.db.Config.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.Nonce != nonce {
		return ErrCSRF
	}
	return nil
}
