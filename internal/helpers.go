package internal

import (
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	letterRunes = []rune("abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ2345679")

	fileNameExp = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)
)

// RandStringRunes returns a random string with n characters
func RandStringRunes(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}

	return string(b)
}

// CleanUpFileName removes the file extension and anything but a-zA-Z0-9-_
func CleanUpFileName(s string) string {
	s = strings.TrimSuffix(s, filepath.Ext(s))
	return fileNameExp.ReplaceAllString(s, "")
}
