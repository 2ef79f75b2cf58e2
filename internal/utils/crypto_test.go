package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomString(t *testing.T) {
	t.Run("respects length and charset", func(t *testing.T) {
		s := GenerateRandomString(16, "ab")

		assert.Len(t, s, 16)
		for _, c := range s {
			assert.Contains(t, "ab", string(c))
		}
	})

	t.Run("distinct across calls", func(t *testing.T) {
		assert.NotEqual(t, GenerateRandomString(32, URLSafeCharset), GenerateRandomString(32, URLSafeCharset))
	})
}

func TestGenerateOpaqueToken(t *testing.T) {
	token := GenerateOpaqueToken()

	assert.Len(t, token, 43)
	for _, c := range token {
		assert.True(t, strings.ContainsRune(URLSafeCharset, c), "unexpected character %q", c)
	}
	assert.NotEqual(t, token, GenerateOpaqueToken())
}
