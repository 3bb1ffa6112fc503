// Package names builds random unique names for sample resources.
package names

import (
	"math/rand"
	"strconv"
)

// maxLen keeps generated names inside the tightest Azure limit we hit,
// the 24 character storage account name.
const maxLen = 23

// New returns a random unique name beginning with the given base. Parts
// are joined with the delimiter; short names are padded with digits. Pass
// an empty delimiter for resources that only accept lowercase alphanumerics,
// such as storage accounts.
func New(base, delimiter string) string {
	name := base + delimiter + adjectives[rand.Intn(len(adjectives))] + delimiter + nouns[rand.Intn(len(nouns))]
	if len(name) < maxLen-1 {
		name += delimiter
		for i := 0; i < 5 && len(name) < maxLen; i++ {
			name += strconv.Itoa(rand.Intn(10))
		}
	}

	return name
}
