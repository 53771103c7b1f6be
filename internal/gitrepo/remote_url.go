package gitrepo

import "strings"

const (
	sshProtocolPrefixConstant   = "ssh://"
	httpProtocolPrefixConstant  = "http://"
	httpsProtocolPrefixConstant = "https://"
	gitUserPrefixConstant       = "git@"
	scpPathDelimiterConstant    = ":"
	pathSeparatorConstant       = "/"
	gitSuffixConstant           = ".git"
)

// WebURLFromRemote normalizes a raw git remote URI into a browsable HTTPS URL.
//
// Remote URIs arrive in three recognized shapes: explicit ssh:// URLs, which
// are deliberately unsupported; http(s) URLs, used as-is; and SCP-style
// git@host:path shorthand, rewritten to https://host/path. For hosts that
// themselves contain colons the final colon-delimited segment is taken as the
// path and everything before it as the host. A trailing .git suffix is
// stripped from any produced URL to avoid a redirect when the page is opened.
// The boolean reports whether a recognized shape matched.
func WebURLFromRemote(remoteURI string) (string, bool) {
	trimmedRemoteURI := strings.TrimSpace(remoteURI)
	loweredRemoteURI := strings.ToLower(trimmedRemoteURI)

	switch {
	case strings.HasPrefix(loweredRemoteURI, sshProtocolPrefixConstant):
		return "", false
	case strings.HasPrefix(loweredRemoteURI, httpProtocolPrefixConstant), strings.HasPrefix(loweredRemoteURI, httpsProtocolPrefixConstant):
		return stripRepositorySuffix(trimmedRemoteURI), true
	case strings.Contains(loweredRemoteURI, gitUserPrefixConstant):
		return stripRepositorySuffix(webURLFromSCPRemote(trimmedRemoteURI)), true
	default:
		return "", false
	}
}

func webURLFromSCPRemote(remoteURI string) string {
	hostAndPath := remoteURI[len(gitUserPrefixConstant):]
	segments := strings.Split(hostAndPath, scpPathDelimiterConstant)
	host := strings.Join(segments[:len(segments)-1], scpPathDelimiterConstant)
	path := segments[len(segments)-1]
	return httpsProtocolPrefixConstant + host + pathSeparatorConstant + path
}

func stripRepositorySuffix(webURL string) string {
	if strings.HasSuffix(strings.ToLower(webURL), gitSuffixConstant) {
		return webURL[:len(webURL)-len(gitSuffixConstant)]
	}
	return webURL
}
