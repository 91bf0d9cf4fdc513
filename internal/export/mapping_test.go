package export

import "testing"

func TestTypeMappings(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{mapTypeToJira, "bug", "Bug"},
		{mapTypeToJira, "initiative", "Story"},
		{mapTypeToJira, "feedback", "Task"},
		{mapTypeToJira, "unknown", "Task"},
		{mapTypeToAzure, "bug", "Bug"},
		{mapTypeToAzure, "initiative", "Feature"},
		{mapTypeToAzure, "feedback", "Task"},
		{mapTypeToAzure, "", "Task"},
		{mapStatusToJira, "active", "To Do"},
		{mapStatusToJira, "archived", "Done"},
		{mapStatusToJira, "bogus", "To Do"},
		{mapStatusToAzure, "active", "New"},
		{mapStatusToAzure, "archived", "Closed"},
		{mapStatusToAzure, "bogus", "New"},
	}
	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Errorf("mapping(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDetectBrowser(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "Chrome"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15", "Safari"},
		{"", "Unknown"},
		{"curl/8.4.0", "Unknown"},
	}
	for _, c := range cases {
		if got := detectBrowser(c.ua); got != c.want {
			t.Errorf("detectBrowser(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestDetectOS(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0", "Windows"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15", "macOS"},
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0", "Linux"},
		{"FeedloopWidget/2.1 (iPhone; iOS 17.1)", "iOS"},
		{"PostmanRuntime/7.36.0", "Unknown"},
	}
	for _, c := range cases {
		if got := detectOS(c.ua); got != c.want {
			t.Errorf("detectOS(%q) = %q, want %q", c.ua, got, c.want)
		}
	}
}

func TestDetectOSFirstMatchWins(t *testing.T) {
	// Android user agents also contain "Linux" and iPhone user agents contain
	// "like Mac OS X"; the ordered checks resolve them to the earlier entry,
	// matching the dashboard's display behavior.
	ua := "Mozilla/5.0 (Linux; Android 14; Pixel 8) Chrome/120.0.0.0 Mobile"
	if got := detectOS(ua); got != "Linux" {
		t.Errorf("detectOS(android) = %q, want Linux (first match)", got)
	}
	ua = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) Safari/604.1"
	if got := detectOS(ua); got != "macOS" {
		t.Errorf("detectOS(iphone) = %q, want macOS (first match)", got)
	}
}
