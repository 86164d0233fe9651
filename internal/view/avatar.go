package view

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

const (
	gravatarBaseURL = "https://www.gravatar.com/avatar/"
	avatarSize      = 100
	avatarRating    = "x"
	avatarDefault   = "retro"
)

// GravatarURL returns the avatar image for an email address.
func GravatarURL(email string) string {
	return GravatarURLSized(email, avatarSize)
}

// GravatarURLSized returns the avatar image at the given pixel size.
func GravatarURLSized(email string, size int) string {
	if size <= 0 {
		size = avatarSize
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	params := url.Values{}
	params.Set("s", fmt.Sprintf("%d", size))
	params.Set("r", avatarRating)
	params.Set("d", avatarDefault)
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?" + params.Encode()
}
