// Package common contains shared constants and sentinel errors used across
// MiniBlog components.
package common

// AccessTokenHeaderName is the HTTP header that carries the access token.
// The API predates the Authorization bearer scheme and keeps the custom
// header for client compatibility.
const AccessTokenHeaderName = "x-access-token"
