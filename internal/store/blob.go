package store

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// userBlobPrefix is the top-level namespace of per-user blobs.
const userBlobPrefix = "users"

// tempBlobPrefix marks in-flight uploads of the local backend. Such files
// are hidden from listings, so user names may not start with it.
const tempBlobPrefix = ".upload-"

// ErrInvalidBlobName is returned for names that cannot be stored safely.
var ErrInvalidBlobName = errors.New("invalid file name")

// UserBlobPrefix returns the key prefix under which the blobs of userID live.
func UserBlobPrefix(userID int64) string {
	return fmt.Sprintf("%s/%d/", userBlobPrefix, userID)
}

// UserBlobKey returns the key of name inside the namespace of userID.
func UserBlobKey(userID int64, name string) string {
	return UserBlobPrefix(userID) + name
}

// SanitizeBlobName reduces name to a single path element. Names that are
// empty, only consist of dots or use the temporary upload prefix are rejected.
func SanitizeBlobName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(path.Clean("/" + strings.TrimSpace(name)))
	if base == "/" || base == "." || base == ".." || strings.Trim(base, ".") == "" || strings.HasPrefix(base, tempBlobPrefix) {
		return "", ErrInvalidBlobName
	}
	return base, nil
}

// splitUserBlobKey is the inverse of [UserBlobKey].
func splitUserBlobKey(key string) (int64, string, bool) {
	rest, ok := strings.CutPrefix(key, userBlobPrefix+"/")
	if !ok {
		return 0, "", false
	}
	idPart, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return 0, "", false
	}
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return userID, name, true
}
