// Package model defines domain types for FinanceFlow groups, balances, and settlements.
package model

import "time"

// Member identifies a group participant.
type Member struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// DisplayPhone returns the member's phone number or a fallback when absent.
func (m Member) DisplayPhone() string {
	if m.PhoneNumber == "" {
		return "No phone"
	}
	return m.PhoneNumber
}

// Group is a split group the current user belongs to.
type Group struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Members   []Member  `json:"members"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberByID returns the group member with the given id.
func (g Group) MemberByID(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
