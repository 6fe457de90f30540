// Package ipfs rewrites ipfs:// URLs into HTTP gateway URLs.
package ipfs

import "strings"

// DefaultGateway is used when no gateway is configured.
const DefaultGateway = "https://api.universalprofile.cloud/ipfs/"

const scheme = "ipfs://"

// Resolve maps ipfs://<cid>[/path] (and the redundant ipfs://ipfs/<cid> form)
// onto gateway. Any other URL is returned unchanged. An empty gateway falls
// back to DefaultGateway.
func Resolve(url, gateway string) string {
	if !IsIPFS(url) {
		return url
	}

	if gateway == "" {
		gateway = DefaultGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}

	path := url[len(scheme):]
	path = strings.TrimPrefix(path, "ipfs/")

	return gateway + path
}

// IsIPFS reports whether url uses the ipfs:// scheme.
func IsIPFS(url string) bool {
	return len(url) >= len(scheme) && strings.EqualFold(url[:len(scheme)], scheme)
}
