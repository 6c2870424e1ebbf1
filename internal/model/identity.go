package model

import "time"

// Claims are the decoded fields of an authentication token.
type Claims struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the per-request caller identity derived from a validated token.
// The zero value is the anonymous identity.
type Identity struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// Anonymous reports whether no validated token produced this identity.
func (i Identity) Anonymous() bool {
	return i.Role == ""
}
