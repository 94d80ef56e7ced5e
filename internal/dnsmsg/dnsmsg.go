// Package dnsmsg implements the minimal DNS wire-format handling the
// sinkhole needs: extracting the question name from a raw query and turning
// a raw query into a negative response.  Everything else about the messages
// stays opaque, upstream answers in particular are relayed without being
// parsed at all.
package dnsmsg

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerLen is the fixed size of a DNS message header.
const headerLen = 12

// rcodeNameError is the response code for a non-existent domain, NXDOMAIN.
const rcodeNameError = 3

// Parse errors returned by [Question] and [NegativeResponse].
var (
	// ErrTooShort means the message cannot even hold a header.
	ErrTooShort = errors.New("dnsmsg: message shorter than header")

	// ErrTruncatedLabel means a label length points past the end of the
	// message.
	ErrTruncatedLabel = errors.New("dnsmsg: label truncated")

	// ErrInvalidEncoding means a label is not printable text or uses name
	// compression, which is not supported here.
	ErrInvalidEncoding = errors.New("dnsmsg: invalid label encoding")
)

// Question extracts the question name from the raw query msg and returns it
// lowercased with the labels joined by dots and no trailing dot.  It also
// returns the 16-bit query type when the message is long enough to carry
// one; qtype is zero otherwise.  Only the first question is looked at,
// multiple questions in one query are not supported.
func Question(msg []byte) (domain string, qtype uint16, err error) {
	if len(msg) < headerLen {
		return "", 0, ErrTooShort
	}

	var b strings.Builder
	pos := headerLen
	for pos < len(msg) && msg[pos] != 0 {
		length := int(msg[pos])
		if length&0xC0 == 0xC0 {
			// A compression pointer cannot occur in the question name of
			// a freshly written query.
			return "", 0, ErrInvalidEncoding
		}

		pos++
		if pos+length > len(msg) {
			return "", 0, ErrTruncatedLabel
		}

		label := msg[pos : pos+length]
		if !printable(label) {
			return "", 0, ErrInvalidEncoding
		}

		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.Write(label)
		pos += length
	}

	if pos < len(msg) && msg[pos] == 0 {
		pos++
	}
	if pos+2 <= len(msg) {
		qtype = binary.BigEndian.Uint16(msg[pos : pos+2])
	}

	return strings.ToLower(b.String()), qtype, nil
}

// NegativeResponse builds an NXDOMAIN reply for the raw query msg.  The
// reply is a copy of the request with the response bit set, the response
// code set to name-error and the answer, authority and additional counts
// zeroed.  The question count and the question section are echoed back
// untouched, so the reply is exactly as long as the request.
func NegativeResponse(msg []byte) (resp []byte, err error) {
	if len(msg) < headerLen {
		return nil, ErrTooShort
	}

	resp = make([]byte, len(msg))
	copy(resp, msg)

	resp[2] |= 0x80
	resp[3] = resp[3]&0xF0 | rcodeNameError
	for i := 6; i < headerLen; i++ {
		resp[i] = 0
	}

	return resp, nil
}

// printable reports whether label is valid printable text.
func printable(label []byte) (ok bool) {
	if !utf8.Valid(label) {
		return false
	}

	for _, r := range string(label) {
		if !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}
