package client

import (
	"net/url"
	"strings"
)

// CredentialSource tells where the winning token came from.
type CredentialSource int

const (
	SourceNone CredentialSource = iota
	SourceURL
	SourceMemory
	SourceStored
)

func (s CredentialSource) String() string {
	switch s {
	case SourceURL:
		return "url"
	case SourceMemory:
		return "memory"
	case SourceStored:
		return "stored"
	default:
		return "none"
	}
}

// Credential is the outcome of [MergeCredentials].
type Credential struct {
	Token  string
	Source CredentialSource

	// StripURL is set when the token came from the URL, which must then be
	// considered consumed.
	StripURL bool
}

// MergeCredentials picks the active token. A token from the redirect URL
// beats the in-memory one, which beats the stored one. Blank values are
// ignored.
func MergeCredentials(urlToken, memoryToken, storedToken string) Credential {
	switch {
	case strings.TrimSpace(urlToken) != "":
		return Credential{Token: strings.TrimSpace(urlToken), Source: SourceURL, StripURL: true}
	case strings.TrimSpace(memoryToken) != "":
		return Credential{Token: strings.TrimSpace(memoryToken), Source: SourceMemory}
	case strings.TrimSpace(storedToken) != "":
		return Credential{Token: strings.TrimSpace(storedToken), Source: SourceStored}
	default:
		return Credential{}
	}
}

// ParseRedirect extracts the "token" and "error" query parameters of a
// redirect URL. A malformed or empty URL yields two empty strings.
func ParseRedirect(raw string) (token, errCode string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ""
	}

	query := u.Query()
	return query.Get("token"), query.Get("error")
}
