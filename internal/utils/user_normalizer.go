package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillswap-web/internal/schemas"
)

const fallbackUserName = "User"

// NormalizeUser converts a user payload of either wire dialect into the
// canonical shape. camelCase values win over their snake_case equivalents.
func NormalizeUser(p schemas.UserPayload) schemas.User {
	return schemas.User{
		ID:            p.Common.ID,
		Name:          userName(p),
		Username:      p.Common.Username,
		Email:         p.Common.Email,
		Location:      derefString(p.Common.Location),
		Bio:           derefString(p.Common.Bio),
		Avatar:        derefString(p.Common.Avatar),
		IsPublic:      firstBool(true, p.Legacy.IsPublic, p.Backend.IsPublic),
		Availability:  schemas.Availability(p.Common.Availability),
		SkillsOffered: skillNames(p.Legacy.SkillsOffered, p.Backend.SkillsOffered),
		SkillsWanted:  skillNames(p.Legacy.SkillsWanted, p.Backend.SkillsWanted),
		Rating:        rating(p.Common.Rating),
		TotalSwaps:    firstInt(p.Legacy.TotalSwaps, p.Backend.TotalSwaps),
		Badges:        skillNames(p.Common.Badges),
		Role:          userRole(p),
		IsActive:      firstBool(true, p.Legacy.IsActive, p.Backend.IsActive),
		IsBanned:      firstBool(false, p.Legacy.IsBanned, p.Backend.IsBanned),
		LastActive:    firstNonBlank(p.Legacy.LastActive, p.Backend.LastActive),
	}
}

// NormalizeUserJSON decodes and normalizes one user object.
func NormalizeUserJSON(data []byte) (schemas.User, error) {
	var payload schemas.UserPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return schemas.User{}, fmt.Errorf("decode user: %w", err)
	}
	return NormalizeUser(payload), nil
}

// NormalizeUsers decodes a user list response and normalizes every entry.
func NormalizeUsers(data []byte) ([]schemas.User, error) {
	items, err := DecodeList(data)
	if err != nil {
		return nil, err
	}

	users := make([]schemas.User, 0, len(items))
	for _, item := range items {
		user, err := NormalizeUserJSON(item)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func userName(p schemas.UserPayload) string {
	if name := strings.TrimSpace(p.Common.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(p.Backend.FullName); name != "" {
		return name
	}

	first := firstNonBlank(p.Legacy.FirstName, p.Backend.FirstName)
	last := firstNonBlank(p.Legacy.LastName, p.Backend.LastName)
	if name := strings.TrimSpace(first + " " + last); name != "" {
		return name
	}

	if username := strings.TrimSpace(p.Common.Username); username != "" {
		return username
	}
	return fallbackUserName
}

func userRole(p schemas.UserPayload) schemas.Role {
	if role := strings.ToLower(strings.TrimSpace(p.Common.Role)); role != "" {
		return schemas.Role(role)
	}
	if isTrue(p.Legacy.IsAdmin) || isTrue(p.Backend.IsStaff) || isTrue(p.Backend.IsSuperuser) {
		return schemas.RoleAdmin
	}
	return schemas.RoleUser
}

// skillNames returns the display names of the first non-nil list, always as a
// non-nil slice. References without a usable name are skipped.
func skillNames(lists ...[]schemas.SkillRef) []string {
	names := make([]string, 0)
	for _, list := range lists {
		if list == nil {
			continue
		}
		for _, ref := range list {
			if name := strings.TrimSpace(ref.Name); name != "" {
				names = append(names, name)
			}
		}
		break
	}
	return names
}

func rating(n *schemas.Number) float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstBool(fallback bool, values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return fallback
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

// PayloadHasProfileFields reports whether p carried what the profile page needs:
// a name and both skill lists, in either dialect.
func PayloadHasProfileFields(p schemas.UserPayload) bool {
	hasName := firstNonBlank(p.Common.Name, p.Backend.FullName, p.Legacy.FirstName, p.Backend.FirstName) != ""
	hasOffered := p.Legacy.SkillsOffered != nil || p.Backend.SkillsOffered != nil
	hasWanted := p.Legacy.SkillsWanted != nil || p.Backend.SkillsWanted != nil
	return hasName && hasOffered && hasWanted
}
