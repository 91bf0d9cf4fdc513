package export

import "strings"

// The mapping functions are total: unknown values fall through to the target
// tracker's catch-all work item kind or initial state.

func mapTypeToJira(t string) string {
	switch t {
	case "bug":
		return "Bug"
	case "initiative":
		return "Story"
	case "feedback":
		return "Task"
	default:
		return "Task"
	}
}

func mapTypeToAzure(t string) string {
	switch t {
	case "bug":
		return "Bug"
	case "initiative":
		return "Feature"
	case "feedback":
		return "Task"
	default:
		return "Task"
	}
}

func mapStatusToJira(s string) string {
	switch s {
	case "active":
		return "To Do"
	case "archived":
		return "Done"
	default:
		return "To Do"
	}
}

func mapStatusToAzure(s string) string {
	switch s {
	case "active":
		return "New"
	case "archived":
		return "Closed"
	default:
		return "New"
	}
}

// detectBrowser runs ordered substring checks against the user-agent string;
// the first match wins.
func detectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	case strings.Contains(ua, "Edg"):
		return "Edge"
	default:
		return "Unknown"
	}
}

func detectOS(ua string) string {
	switch {
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Mac"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"), strings.Contains(ua, "iOS"):
		return "iOS"
	default:
		return "Unknown"
	}
}
