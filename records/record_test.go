package records

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectionRejectionMatrix(t *testing.T) {
	cases := []struct {
		correction string
		rejection  string
		ok         bool
	}{
		{"", "", true},
		{"", "S", true},
		{"", "N", true},
		{"", "X", false},
		{"S", "", true},
		{"S", "S", true},
		{"S", "N", false},
		{"S", "X", true},
		{"N", "", true},
		{"N", "S", false},
		{"N", "N", true},
		{"N", "X", false},
	}
	for _, tc := range cases {
		name := "correction=" + orAbsent(tc.correction) + "/rejection=" + orAbsent(tc.rejection)
		t.Run(name, func(t *testing.T) {
			r := testRegistration()
			r.Correction = tc.correction
			r.PreviousRejection = tc.rejection
			err := r.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func orAbsent(v string) string {
	if v == "" {
		return "absent"
	}
	return v
}

func TestInvalidMarkerValues(t *testing.T) {
	r := testRegistration()
	r.PreviousRejection = "Z"
	assertFieldError(t, r.Validate(), "previous_rejection", "invalid")

	r = testRegistration()
	r.Correction = "X"
	assertFieldError(t, r.Validate(), "correction", "invalid")
}

func TestChainPairConsistency(t *testing.T) {
	t.Run("hash without identifier rejected", func(t *testing.T) {
		r := testRegistration()
		r.PreviousHash = strings.Repeat("A", 64)
		assertFieldError(t, r.Validate(), "previous_invoice_id", "required")
	})

	t.Run("identifier without hash rejected", func(t *testing.T) {
		r := testRegistration()
		prev := NewInvoiceIdentifier("A00000000", "PRUEBA-0000", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))
		r.PreviousID = &prev
		assertFieldError(t, r.Validate(), "previous_hash", "required")
	})

	t.Run("lowercase previous hash rejected", func(t *testing.T) {
		r := testRegistration()
		prev := NewInvoiceIdentifier("A00000000", "PRUEBA-0000", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))
		r.PreviousID = &prev
		r.PreviousHash = strings.Repeat("a", 64)
		assertFieldError(t, r.Validate(), "previous_hash", "format")
	})
}

func TestChainReplay(t *testing.T) {
	head := testRegistration()
	require.NoError(t, head.Seal())

	next := testRegistration()
	next.ID.InvoiceNumber = "PRUEBA-0002"
	next.PreviousID = &head.ID
	next.PreviousHash = head.Hash
	next.GeneratedAt = madridTime(2025, 6, 2, 9, 0, 0, 2)
	require.NoError(t, next.Seal())

	cancelID := next.ID
	cancel := &CancellationRecord{
		RecordFields: RecordFields{
			ID:           cancelID,
			PreviousID:   &next.ID,
			PreviousHash: next.Hash,
			GeneratedAt:  madridTime(2025, 6, 3, 9, 0, 0, 2),
		},
	}
	require.NoError(t, cancel.Seal())

	// Replaying the chain reproduces every declared fingerprint
	chain := []Record{head, next, cancel}
	previousHash := ""
	for i, rec := range chain {
		assert.Equal(t, rec.Fields().Hash, rec.CalculateHash(), "record %d", i)
		assert.Equal(t, previousHash, rec.Fields().PreviousHash, "record %d link", i)
		previousHash = rec.Fields().Hash
	}
}

func TestChainMutationBreaksLink(t *testing.T) {
	head := testRegistration()
	require.NoError(t, head.Seal())

	next := testRegistration()
	next.ID.InvoiceNumber = "PRUEBA-0002"
	next.PreviousID = &head.ID
	next.PreviousHash = head.Hash
	require.NoError(t, next.Seal())

	// Tampering with a fingerprinted field of the head breaks the link
	head.TotalAmount = "12.11"
	assert.NotEqual(t, next.PreviousHash, head.CalculateHash())
}

func TestGeneratedAtCanonicalForm(t *testing.T) {
	f := RecordFields{GeneratedAt: time.Date(2025, 6, 1, 10, 20, 30, 0, time.UTC)}
	assert.Equal(t, "2025-06-01T10:20:30+00:00", f.GeneratedAtString())

	f.GeneratedAt = madridTime(2025, 1, 15, 8, 0, 0, 1)
	assert.Equal(t, "2025-01-15T08:00:00+01:00", f.GeneratedAtString())

	// Sub-second precision never leaks into the canonical form
	f.GeneratedAt = time.Date(2025, 6, 1, 10, 20, 30, 999_000_000, time.UTC)
	assert.Equal(t, "2025-06-01T10:20:30+00:00", f.GeneratedAtString())
}
