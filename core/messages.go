package core

import (
	"golang.org/x/text/language"
)

// Messages maps keys to user-facing copy.
type Messages map[string]string

// Get returns the message with the given key, or the key itself.
func (m Messages) Get(key string) string {
	if msg, ok := m[key]; ok {
		return msg
	}
	return key
}

var builtinCopy = map[language.Tag]Messages{
	language.Italian: {
		"forbidden":      "errore 403 - Accesso Negato",
		"not-found":      "errore 404 - File non trovato",
		"internal-error": "errore 500 - Errore interno al server",
		"field-required": "Questo campo è obbligatorio.",
		"csrf-invalid":   "Il token CSRF non è valido o è scaduto.",
		"login-failed":   "Email o password errata.",
		"logged-in":      "Benvenuto %s!",
		"logged-out":     "Arrivederci.",
		"saved":          "Salvato.",
		"deleted":        "Eliminato.",

		// admin panel
		"email-required":     "L'indirizzo email è obbligatorio.",
		"own-admin":          "Non puoi revocare il tuo ruolo di amministratore né disattivare il tuo account.",
		"password-too-long":  "La password è troppo lunga, al massimo %d byte.",
		"passwords-mismatch": "Le nuove password non coincidono.",
		"role-created":       "Il ruolo %s è stato creato.",
		"role-name-required": "Il nome del ruolo è obbligatorio.",
		"role-saved":         "Il ruolo %s è stato salvato.",
		"user-created":       "L'utente %s è stato creato.",
		"user-saved":         "L'utente %s è stato salvato.",
	},
	language.English: {
		"forbidden":      "error 403 - Access denied",
		"not-found":      "error 404 - File not found",
		"internal-error": "error 500 - Internal server error",
		"field-required": "This field is required.",
		"csrf-invalid":   "The CSRF token is missing, invalid or expired.",
		"login-failed":   "Wrong email or password.",
		"logged-in":      "Welcome %s!",
		"logged-out":     "Goodbye.",
		"saved":          "Saved.",
		"deleted":        "Deleted.",

		// admin panel
		"email-required":     "The email address is required.",
		"own-admin":          "You can't revoke your own admin role or deactivate your account.",
		"password-too-long":  "The password is too long, at most %d bytes are allowed.",
		"passwords-mismatch": "The new passwords don't match.",
		"role-created":       "Role %s has been created.",
		"role-name-required": "The role name is required.",
		"role-saved":         "Role %s has been saved.",
		"user-created":       "User %s has been created.",
		"user-saved":         "User %s has been saved.",
	},
}

// Copy selects Messages by the Accept-Language header of a request.
type Copy struct {
	matcher  language.Matcher
	tags     []language.Tag
	catalogs []Messages // same order as tags
}

// NewCopy creates a Copy whose default is defaultLang. Overrides replace built-in messages in every language.
func NewCopy(defaultLang string, overrides map[string]string) (*Copy, error) {

	defaultTag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, err
	}

	var tags = []language.Tag{}
	var catalogs = []Messages{}

	var add = func(tag language.Tag, builtin Messages) {
		var messages = make(Messages, len(builtin)+len(overrides))
		for key, msg := range builtin {
			messages[key] = msg
		}
		for key, msg := range overrides {
			messages[key] = msg
		}
		tags = append(tags, tag)
		catalogs = append(catalogs, messages)
	}

	// the default comes first, so the matcher falls back to it
	defaultBase, _ := defaultTag.Base()
	var found = false
	for tag, builtin := range builtinCopy {
		if base, _ := tag.Base(); base == defaultBase {
			add(tag, builtin)
			found = true
		}
	}
	if !found {
		add(defaultTag, builtinCopy[language.English])
	}

	for tag, builtin := range builtinCopy {
		if base, _ := tag.Base(); base != defaultBase {
			add(tag, builtin)
		}
	}

	return &Copy{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		catalogs: catalogs,
	}, nil
}

// For returns the language and the Messages which fit best to an Accept-Language header value.
func (c *Copy) For(acceptLanguage string) (language.Tag, Messages) {
	_, index := language.MatchStrings(c.matcher, acceptLanguage)
	return c.tags[index], c.catalogs[index]
}
