package identifier

import (
	"strings"
	"testing"

	"github.com/revcycle/revcycle/internal/sim/sampling"
)

func TestClaimNumber(t *testing.T) {
	got := ClaimNumber(2024, "SUMMIT", 7)
	if got != "SUMMIT-2024-00000007" {
		t.Errorf("ClaimNumber = %s, want SUMMIT-2024-00000007", got)
	}
}

func TestClaimNumber_LargeSequence(t *testing.T) {
	got := ClaimNumber(2026, "MERCY", 12345678)
	if got != "MERCY-2026-12345678" {
		t.Errorf("ClaimNumber = %s, want MERCY-2026-12345678", got)
	}
}

func TestNPI_Shape(t *testing.T) {
	src := sampling.NewSource(42)
	for i := 0; i < 1000; i++ {
		npi := NPI(src)
		if len(npi) != 10 {
			t.Fatalf("NPI %s is %d digits, want 10", npi, len(npi))
		}
		if npi[0] != '1' {
			t.Fatalf("NPI %s does not start with 1", npi)
		}
		for _, c := range npi {
			if c < '0' || c > '9' {
				t.Fatalf("NPI %s contains non-digit", npi)
			}
		}
	}
}

func TestNPI_LuhnCheckDigit(t *testing.T) {
	src := sampling.NewSource(7)
	for i := 0; i < 1000; i++ {
		npi := NPI(src)
		// Recompute the check digit over the first nine digits with the
		// 80840 industry prefix; it must match the tenth.
		want := luhnCheckDigit(npi[:9])
		if int(npi[9]-'0') != want {
			t.Fatalf("NPI %s has check digit %c, want %d", npi, npi[9], want)
		}
	}
}

func TestMemberID_Pattern(t *testing.T) {
	src := sampling.NewSource(99)
	isLetter := func(c byte) bool { return strings.IndexByte(mbiLetters, c) >= 0 }
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	for i := 0; i < 1000; i++ {
		id := MemberID(src)
		if len(id) != 11 {
			t.Fatalf("member ID %s is %d chars, want 11", id, len(id))
		}
		if !isDigit(id[0]) || id[0] == '0' {
			t.Fatalf("member ID %s: position 1 must be a non-zero digit", id)
		}
		for _, pos := range []int{1, 4, 7, 8} { // fixed letter positions
			if !isLetter(id[pos]) {
				t.Fatalf("member ID %s: position %d must be a restricted letter", id, pos+1)
			}
		}
		for _, pos := range []int{3, 6, 9, 10} { // fixed digit positions
			if !isDigit(id[pos]) {
				t.Fatalf("member ID %s: position %d must be a digit", id, pos+1)
			}
		}
		for _, pos := range []int{2, 5} { // letter-or-digit positions
			if !isLetter(id[pos]) && !isDigit(id[pos]) {
				t.Fatalf("member ID %s: position %d invalid", id, pos+1)
			}
		}
		for _, excluded := range "SLOIBZ" {
			if strings.ContainsRune(id, excluded) {
				t.Fatalf("member ID %s contains excluded letter %c", id, excluded)
			}
		}
	}
}

func TestMRN_Shape(t *testing.T) {
	src := sampling.NewSource(5)
	mrn := MRN(src)
	if !strings.HasPrefix(mrn, "MRN-") || len(mrn) != 12 {
		t.Errorf("unexpected MRN format: %s", mrn)
	}
}
