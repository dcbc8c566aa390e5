package coordinator

import "skillswap-web/internal/schemas"

// Capability is an action a role may perform.
type Capability string

const (
	CapViewProfiles      Capability = "view_profiles"
	CapRequestSwap       Capability = "request_swap"
	CapEditProfile       Capability = "edit_profile"
	CapViewRequests      Capability = "view_requests"
	CapSubmitRating      Capability = "submit_rating"
	CapReadNotifications Capability = "read_notifications"

	CapAdminViewAllUsers    Capability = "admin_view_all_users"
	CapAdminMonitorSwaps    Capability = "admin_monitor_swaps"
	CapAdminUpdateUser      Capability = "admin_update_user"
	CapAdminDeleteUser      Capability = "admin_delete_user"
	CapAdminBanUser         Capability = "admin_ban_user"
	CapAdminRejectSkill     Capability = "admin_reject_skill"
	CapAdminSendBroadcast   Capability = "admin_send_broadcast"
	CapAdminDownloadReports Capability = "admin_download_reports"
)

// CapabilitySet is the set of actions granted to a role.
type CapabilitySet map[Capability]struct{}

// Allows reports whether c is granted.
func (cs CapabilitySet) Allows(c Capability) bool {
	_, ok := cs[c]
	return ok
}

func newCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

var (
	guestCapabilities = newCapabilitySet(CapViewProfiles)

	userCapabilities = newCapabilitySet(
		CapViewProfiles,
		CapRequestSwap,
		CapEditProfile,
		CapViewRequests,
		CapSubmitRating,
		CapReadNotifications,
	)

	// Admin accounts manage the platform and take no part in swapping.
	adminCapabilities = newCapabilitySet(
		CapAdminViewAllUsers,
		CapAdminMonitorSwaps,
		CapAdminUpdateUser,
		CapAdminDeleteUser,
		CapAdminBanUser,
		CapAdminRejectSkill,
		CapAdminSendBroadcast,
		CapAdminDownloadReports,
	)
)

// Capabilities returns the actions granted to role. Unknown roles get the guest set.
func Capabilities(role schemas.Role) CapabilitySet {
	switch role {
	case schemas.RoleAdmin:
		return adminCapabilities
	case schemas.RoleUser:
		return userCapabilities
	default:
		return guestCapabilities
	}
}

// pageAccess decides where a navigation to target ends for role. restricted
// means the navigation is refused outright and the current page stays.
func pageAccess(role schemas.Role, target schemas.Page) (resolved schemas.Page, restricted bool) {
	switch role {
	case schemas.RoleAdmin:
		if target == schemas.PageAdmin || target == schemas.PageLogin {
			return target, false
		}
		return "", true
	case schemas.RoleUser:
		if target == schemas.PageAdmin {
			return schemas.PageHome, false
		}
		return target, false
	default:
		switch target {
		case schemas.PageProfile, schemas.PageRequests, schemas.PageAdmin:
			return schemas.PageLogin, false
		}
		return target, false
	}
}

// landingPage is where a freshly signed-in role starts.
func landingPage(role schemas.Role) schemas.Page {
	if role == schemas.RoleAdmin {
		return schemas.PageAdmin
	}
	return schemas.PageHome
}

func knownPage(page schemas.Page) bool {
	switch page {
	case schemas.PageHome, schemas.PageLogin, schemas.PageRegister, schemas.PageProfile,
		schemas.PageRequests, schemas.PageAdmin, schemas.PageUserProfile:
		return true
	}
	return false
}
