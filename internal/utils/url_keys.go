package utils

const (
	// UserIdKey is the key for user ID used in routing parameters.
	UserIdKey = "userId"

	// SwapIdKey is the key for swap request ID used in routing parameters.
	SwapIdKey = "swapId"

	// NotificationIdKey is the key for notification ID used in routing parameters.
	NotificationIdKey = "notificationId"

	// SkillIdKey is the key for skill ID used in routing parameters.
	SkillIdKey = "skillId"

	// ReportTypeKey is the key for the admin report type used in routing parameters.
	ReportTypeKey = "reportType"

	// OffsetParamKey is the key for offset used in pagination query parameters.
	OffsetParamKey = "offset"

	// LimitParamKey is the key for limit used in pagination query parameters.
	LimitParamKey = "limit"

	// BrowserSessionCookie is the cookie carrying the browser session id.
	BrowserSessionCookie = "skillswap_session"

	// BrowserSessionHeader carries the browser session id for clients without cookies.
	BrowserSessionHeader = "X-Browser-Session"
)
