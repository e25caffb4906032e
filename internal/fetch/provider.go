package fetch

import (
	"net/url"
	"regexp"
	"strings"
)

// Provider identifies the cloud storage service behind a share link.
type Provider string

const (
	ProviderGoogleDrive Provider = "google_drive"
	ProviderDropbox     Provider = "dropbox"
	ProviderOneDrive    Provider = "onedrive"
	ProviderGitHub      Provider = "github"
	ProviderDirect      Provider = "direct"
)

// DetectProvider classifies a URL by its host.
func DetectProvider(rawURL string) Provider {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ProviderDirect
	}
	host := strings.ToLower(parsed.Hostname())
	switch {
	case hostMatches(host, "drive.google.com", "docs.google.com"):
		return ProviderGoogleDrive
	case hostMatches(host, "dropbox.com"):
		return ProviderDropbox
	case hostMatches(host, "onedrive.live.com", "sharepoint.com", "1drv.ms"):
		return ProviderOneDrive
	case hostMatches(host, "github.com", "githubusercontent.com"):
		return ProviderGitHub
	default:
		return ProviderDirect
	}
}

func hostMatches(host string, domains ...string) bool {
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

var driveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
}

// DriveFileID extracts the file id from a Google Drive share URL. It
// returns "" when the URL carries no recognizable id.
func DriveFileID(rawURL string) string {
	for _, pattern := range driveIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// dropboxDirectURL forces the direct-download form of a Dropbox share
// link by setting dl=1.
func dropboxDirectURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	query.Set("dl", "1")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// onedriveDirectURL appends download=1 so OneDrive serves the file
// instead of its preview page.
func onedriveDirectURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	query.Set("download", "1")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// githubRawURL rewrites a github.com blob link to its
// raw.githubusercontent.com equivalent.
func githubRawURL(rawURL string) string {
	if !strings.Contains(rawURL, "github.com") {
		return rawURL
	}
	direct := strings.Replace(rawURL, "github.com", "raw.githubusercontent.com", 1)
	return strings.Replace(direct, "/blob/", "/", 1)
}
