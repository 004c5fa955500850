// Package caseid issues short human-presentable case identifiers for
// appointments. An identifier is a retrieval token, not a credential:
// it only has to be unambiguous when read aloud and practically
// collision-free. Issuance re-checks the store inside the booking
// transaction, so a random collision leads to a reissue, not a
// duplicate.
package caseid

import (
	"crypto/rand"
	"fmt"
)

// Alphabet исключает символы, которые легко перепутать на слух и на глаз
// (0/O, 1/I/L)
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Length длина идентификатора
// 31^9 ~ 2.6e13 вариантов - коллизии практически исключены
const Length = 9

// rejectAbove отсекает байты, не укладывающиеся в целое число циклов
// алфавита: 256 не кратно 31, без отбраковки первые 8 символов
// выпадали бы чаще остальных
const rejectAbove = byte(len(Alphabet) * (256 / len(Alphabet)))

// Issue генерирует новый идентификатор
func Issue() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length)

	for {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("caseid: read random: %w", err)
		}

		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == Length {
				return string(out), nil
			}
		}
	}
}
