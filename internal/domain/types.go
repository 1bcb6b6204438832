package domain

import "strings"

// ListingStatus is the sale state of a marketplace listing.
type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingReserved  ListingStatus = "reserved"
	ListingSold      ListingStatus = "sold"
)

// ParseListingStatus returns false for anything outside available/reserved/sold.
func ParseListingStatus(s string) (ListingStatus, bool) {
	switch st := ListingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ListingAvailable, ListingReserved, ListingSold:
		return st, true
	}
	return "", false
}

// PostStatus is the lifecycle of a forum question.
type PostStatus string

const (
	PostOpen   PostStatus = "open"
	PostSolved PostStatus = "solved"
	PostClosed PostStatus = "closed"
)

// Role of a community member.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleTrader Role = "trader"
	RoleExpert Role = "expert"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleFarmer, RoleTrader, RoleExpert:
		return r, true
	}
	return "", false
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Authenticated reports whether the request carried a valid token.
func (r RequestContext) Authenticated() bool {
	return r.UserID != ""
}
