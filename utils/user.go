package utils

import "strings"

// ExtractNameFromEmail returns the local part of an email address
func ExtractNameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// AvatarOrFallback returns the stored avatar or a DiceBear avatar seeded from the name
func AvatarOrFallback(avatar, name string) string {
	if avatar != "" {
		return avatar
	}
	return "https://api.dicebear.com/9.x/adventurer/svg?seed=" + name
}
