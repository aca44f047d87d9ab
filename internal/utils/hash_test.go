// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/models"
)

const testHashKey = "test-secret-key"

func TestHasher_MatchesHMAC(t *testing.T) {
	data := []byte("test-data")

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(data)
	expected := mac.Sum(nil)

	h := NewHasher(testHashKey)
	assert.Equal(t, expected, h.Sum(data))
	assert.Equal(t, expected, h.Sum(data), "hash must be deterministic")
	assert.Equal(t, hex.EncodeToString(expected), h.SumHex(data))
}

func TestHasher_RealPayload(t *testing.T) {
	body, err := json.Marshal(models.ItemRequest{
		UserID: 1,
		CipheredFields: models.CipheredFields{
			Site:     "c2l0ZQ==",
			Username: "dXNlcg==",
			Password: "cGFzcw==",
		},
	})
	require.NoError(t, err)

	h := NewHasher(testHashKey)
	sig := h.SumHex(body)

	assert.True(t, h.Verify(body, sig))
	assert.False(t, h.Verify(append(body, ' '), sig))
}

func TestHasher_DifferentKeys(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t, NewHasher("a").Sum(data), NewHasher("b").Sum(data))
}

func TestHasher_VerifyRejectsGarbage(t *testing.T) {
	h := NewHasher(testHashKey)
	assert.False(t, h.Verify([]byte("x"), "not-hex"))
	assert.False(t, h.Verify([]byte("x"), ""))
}

func TestHasher_ConcurrentUse(t *testing.T) {
	h := NewHasher(testHashKey)
	want := h.SumHex([]byte("same"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, h.SumHex([]byte("same")))
		}()
	}
	wg.Wait()
}
