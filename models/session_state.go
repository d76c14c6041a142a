package models

type SessionState string

const (
	SessionStateAnonymous      SessionState = "anonymous"
	SessionStateAuthenticating SessionState = "authenticating"
	SessionStateAuthenticated  SessionState = "authenticated"
)
