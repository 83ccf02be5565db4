package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests to protected endpoints.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "
