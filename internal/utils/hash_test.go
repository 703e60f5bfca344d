// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"sync"
	"testing"

	"github.com/MKhiriev/go-melon-sync/models"
)

const testHashKey = "test-secret-key"

func TestHasher_Hash(t *testing.T) {
	h := NewHasher(testHashKey)
	data := []byte("test-data")

	sum1 := h.Hash(data)
	sum2 := h.Hash(data)

	if len(sum1) == 0 {
		t.Fatal("hash result is empty")
	}
	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(data)
	if expected := mac.Sum(nil); !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

func TestHasher_VerifyDocuments(t *testing.T) {
	h := NewHasher(testHashKey)

	docs := []models.Document{{ID: "1", Collection: "todos", Data: models.Fields{"text": "todo 1"}}}
	body, err := json.Marshal(docs)
	if err != nil {
		t.Fatalf("failed to marshal documents: %v", err)
	}
	sum := h.HashHex(body)

	if !h.Verify(body, sum) {
		t.Fatal("expected digest to verify")
	}

	docs[0].Data["text"] = "tampered"
	tampered, _ := json.Marshal(docs)
	if h.Verify(tampered, sum) {
		t.Fatal("expected tampered payload to fail verification")
	}

	if h.Verify(body, "not-hex") {
		t.Fatal("expected malformed digest to fail verification")
	}
}

func TestHasher_DifferentKeys(t *testing.T) {
	data := []byte("same")

	if bytes.Equal(NewHasher("a").Hash(data), NewHasher("b").Hash(data)) {
		t.Fatal("different keys must produce different digests")
	}
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher(testHashKey)
	want := h.HashHex([]byte("x"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := h.HashHex([]byte("x")); got != want {
				t.Errorf("concurrent hash mismatch: %s", got)
			}
		}()
	}
	wg.Wait()
}
