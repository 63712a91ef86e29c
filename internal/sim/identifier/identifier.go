// Package identifier formats the wire identifiers used across generated
// records: claim numbers, NPI-style provider identifiers, and
// Medicare-style member identifiers.
package identifier

import (
	"fmt"
	"strings"

	"github.com/revcycle/revcycle/internal/sim/sampling"
)

// ClaimNumber formats ORGCODE-YYYY-######## with an 8-digit zero-padded
// sequence.
func ClaimNumber(year int, orgCode string, seq int) string {
	return fmt.Sprintf("%s-%04d-%08d", orgCode, year, seq)
}

// npiPrefix is the fixed leading block of generated provider identifiers.
// Real NPIs begin with 1 or 2; generated ones always use the 1-series.
const npiPrefix = "12345"

// NPI generates a 10-digit provider identifier: the fixed 5-digit prefix,
// 4 random digits, and a Luhn check digit computed with the 80840 health
// industry prefix.
func NPI(src sampling.Source) string {
	var b strings.Builder
	b.WriteString(npiPrefix)
	for i := 0; i < 4; i++ {
		b.WriteByte(byte('0' + sampling.IntN(src, 10)))
	}
	base := b.String()
	return base + string(byte('0'+luhnCheckDigit(base)))
}

// luhnCheckDigit computes the NPI check digit. Per the NPI standard the
// 9 digits are prefixed with 80840 before the Luhn calculation.
func luhnCheckDigit(digits string) int {
	full := "80840" + digits
	sum := 0
	double := true // rightmost digit of the payload is doubled
	for i := len(full) - 1; i >= 0; i-- {
		d := int(full[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// mbiLetters excludes S, L, O, I, B, and Z, which are too easily confused
// with digits.
const mbiLetters = "ACDEFGHJKMNPQRTUVWXY"

// MemberID generates an 11-character Medicare-style member identifier
// following the MBI pattern C A AN N A AN N A A N N, where C is a non-zero
// digit, A is a restricted letter, AN is a restricted letter or digit, and
// N is a digit.
func MemberID(src sampling.Source) string {
	var b strings.Builder
	b.WriteByte(byte('1' + sampling.IntN(src, 9))) // position 1: digit 1-9
	b.WriteByte(mbiLetter(src))                    // 2: letter
	b.WriteByte(mbiAlnum(src))                     // 3: letter or digit
	b.WriteByte(mbiDigit(src))                     // 4: digit
	b.WriteByte(mbiLetter(src))                    // 5: letter
	b.WriteByte(mbiAlnum(src))                     // 6: letter or digit
	b.WriteByte(mbiDigit(src))                     // 7: digit
	b.WriteByte(mbiLetter(src))                    // 8: letter
	b.WriteByte(mbiLetter(src))                    // 9: letter
	b.WriteByte(mbiDigit(src))                     // 10: digit
	b.WriteByte(mbiDigit(src))                     // 11: digit
	return b.String()
}

func mbiLetter(src sampling.Source) byte {
	return mbiLetters[sampling.IntN(src, len(mbiLetters))]
}

func mbiDigit(src sampling.Source) byte {
	return byte('0' + sampling.IntN(src, 10))
}

func mbiAlnum(src sampling.Source) byte {
	if sampling.Bernoulli(src, 0.5) {
		return mbiLetter(src)
	}
	return mbiDigit(src)
}

// MRN formats a medical record number.
func MRN(src sampling.Source) string {
	return fmt.Sprintf("MRN-%08d", sampling.IntN(src, 100000000))
}

// GroupNumber formats an employer group number for commercial coverages.
func GroupNumber(src sampling.Source) string {
	return fmt.Sprintf("GRP-%06d", sampling.IntN(src, 1000000))
}

// PaymentReference formats a remittance trace number.
func PaymentReference(src sampling.Source) string {
	return fmt.Sprintf("EFT-%010d", sampling.IntN(src, 1000000000))
}
