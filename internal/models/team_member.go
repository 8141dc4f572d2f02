package models

import "github.com/thenoetrevino/phaseboard/internal/types"

// TeamMember is an immutable directory entry shared by reference
type TeamMember struct {
	ID     types.MemberID `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Role   string         `json:"role" yaml:"role"`
	Avatar string         `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Common roles used by the default pipeline
const (
	RoleScriptwriter     = "Scriptwriter"
	RoleVideoEditor      = "Video Editor"
	RoleMarketingAnalyst = "Marketing Analyst"
	RoleCreativeDirector = "Creative Director"
)
