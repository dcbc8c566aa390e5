package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillswap-web/internal/schemas"
)

// NormalizeSwapRequest converts a swap request payload of either wire dialect
// into the canonical shape. Both parties are normalized as full users.
func NormalizeSwapRequest(p schemas.SwapPayload) schemas.SwapRequest {
	swap := schemas.SwapRequest{
		ID:           p.Common.ID,
		FromUser:     normalizeParty(p.Legacy.FromUser, p.Backend.FromUser, p.Backend.Requester),
		ToUser:       normalizeParty(p.Legacy.ToUser, p.Backend.ToUser, p.Backend.Target),
		OfferedSkill: skillName(p.Legacy.OfferedSkill, p.Backend.OfferedSkill),
		WantedSkill:  skillName(p.Legacy.WantedSkill, p.Backend.WantedSkill),
		Message:      p.Common.Message,
		Status:       schemas.SwapStatus(strings.ToLower(p.Common.Status)),
		CreatedAt:    firstNonBlank(p.Legacy.CreatedAt, p.Backend.CreatedAt),
		Rated:        firstBool(false, p.Common.Rated),
		Feedback:     p.Common.Feedback,
	}
	if p.Common.Rating != nil {
		score := *p.Common.Rating
		swap.Rating = &score
	}
	return swap
}

// NormalizeSwapRequestJSON decodes and normalizes one swap request object.
func NormalizeSwapRequestJSON(data []byte) (schemas.SwapRequest, error) {
	var payload schemas.SwapPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return schemas.SwapRequest{}, fmt.Errorf("decode swap request: %w", err)
	}
	return NormalizeSwapRequest(payload), nil
}

// NormalizeSwapRequests decodes a swap request list response and normalizes every entry.
func NormalizeSwapRequests(data []byte) ([]schemas.SwapRequest, error) {
	items, err := DecodeList(data)
	if err != nil {
		return nil, err
	}

	swaps := make([]schemas.SwapRequest, 0, len(items))
	for _, item := range items {
		swap, err := NormalizeSwapRequestJSON(item)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}
	return swaps, nil
}

func normalizeParty(candidates ...*schemas.UserPayload) schemas.User {
	for _, candidate := range candidates {
		if candidate != nil {
			return NormalizeUser(*candidate)
		}
	}
	return NormalizeUser(schemas.UserPayload{})
}

func skillName(refs ...*schemas.SkillRef) string {
	for _, ref := range refs {
		if ref != nil && strings.TrimSpace(ref.Name) != "" {
			return ref.Name
		}
	}
	return ""
}
