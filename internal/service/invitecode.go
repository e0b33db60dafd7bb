package service

import (
	"crypto/rand"
	"fmt"
)

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newInviteCode генерирует код из inviteAlphabet без смещения распределения.
func newInviteCode(length int) (string, error) {
	const limit = 256 - 256%len(inviteAlphabet)

	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, inviteAlphabet[int(b)%len(inviteAlphabet)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}
