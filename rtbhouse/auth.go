package rtbhouse

import "encoding/base64"

// Credentials produces the Authorization header value attached to every
// request. Implementations are immutable and never logged.
type Credentials interface {
	headerValue() string
}

// BasicAuth authenticates with a username/password pair.
type BasicAuth struct {
	username string
	password string
}

// NewBasicAuth creates basic-auth credentials. Empty username or password is
// rejected here so it never fails at request time.
func NewBasicAuth(username, password string) (BasicAuth, error) {
	if username == "" {
		return BasicAuth{}, &ParameterError{Param: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return BasicAuth{}, &ParameterError{Param: "password", Reason: "must not be empty"}
	}
	return BasicAuth{username: username, password: password}, nil
}

func (a BasicAuth) headerValue() string {
	raw := a.username + ":" + a.password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// TokenAuth authenticates with an opaque API token.
type TokenAuth struct {
	token string
}

// NewTokenAuth creates token credentials. An empty token is rejected.
func NewTokenAuth(token string) (TokenAuth, error) {
	if token == "" {
		return TokenAuth{}, &ParameterError{Param: "token", Reason: "must not be empty"}
	}
	return TokenAuth{token: token}, nil
}

func (a TokenAuth) headerValue() string {
	return "Token " + a.token
}
