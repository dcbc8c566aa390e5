package coordinator

import "fmt"

// Backend REST paths, relative to the API base URL.
const (
	pathRegister       = "/auth/register/"
	pathLogin          = "/auth/login/"
	pathCurrentUser    = "/users/me/"
	pathUsers          = "/users/"
	pathSkills         = "/skills/"
	pathSwaps          = "/swaps/"
	pathSentSwaps      = "/swaps/sent/"
	pathReceivedSwaps  = "/swaps/received/"
	pathRatings        = "/ratings/"
	pathNotifications  = "/notifications/"
	pathMarkAllRead    = "/notifications/mark_all_read/"
	pathBroadcast      = "/notifications/broadcast/"
	pathAdminUsers     = "/users/admin_users_detailed/"
	pathAdminDashboard = "/users/admin_dashboard/"
)

const (
	defaultBroadcastType = "admin_message"
	reportFileNameSuffix = "-report"
)

func userPath(id string) string {
	return fmt.Sprintf("/users/%s/", id)
}

func swapPath(id string) string {
	return fmt.Sprintf("/swaps/%s/", id)
}

func notificationPath(id string) string {
	return fmt.Sprintf("/notifications/%s/", id)
}

func adminUpdatePath(userID string) string {
	return fmt.Sprintf("/users/%s/admin_update/", userID)
}

func banPath(userID string) string {
	return fmt.Sprintf("/users/%s/ban/", userID)
}

func unbanPath(userID string) string {
	return fmt.Sprintf("/users/%s/unban/", userID)
}

func rejectSkillPath(skillID string) string {
	return fmt.Sprintf("/skills/%s/reject/", skillID)
}

func reportPath(reportType string) string {
	return fmt.Sprintf("/admin/reports/%s/", reportType)
}
