package dnsmsg

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packQuery builds a raw wire-format query for name and qtype.
func packQuery(t *testing.T, name string, qtype uint16) (msg []byte) {
	t.Helper()

	m := new(dns.Msg)
	m.SetQuestion(name, qtype)

	msg, err := m.Pack()
	require.NoError(t, err)

	return msg
}

func TestQuestion(t *testing.T) {
	testCases := []struct {
		name       string
		queryName  string
		qtype      uint16
		wantDomain string
	}{{
		name:       "simple",
		queryName:  "a.b.c.",
		qtype:      dns.TypeA,
		wantDomain: "a.b.c",
	}, {
		name:       "lowercased",
		queryName:  "ADS.Example.COM.",
		qtype:      dns.TypeAAAA,
		wantDomain: "ads.example.com",
	}, {
		name:       "single label",
		queryName:  "localhost.",
		qtype:      dns.TypeA,
		wantDomain: "localhost",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := packQuery(t, tc.queryName, tc.qtype)

			domain, qtype, err := Question(msg)
			require.NoError(t, err)

			assert.Equal(t, tc.wantDomain, domain)
			assert.Equal(t, tc.qtype, qtype)
		})
	}
}

func TestQuestion_errors(t *testing.T) {
	header := make([]byte, 12)

	testCases := []struct {
		name    string
		msg     []byte
		wantErr error
	}{{
		name:    "too short",
		msg:     []byte{1, 2, 3, 4, 5},
		wantErr: ErrTooShort,
	}, {
		name:    "empty",
		msg:     nil,
		wantErr: ErrTooShort,
	}, {
		name:    "truncated label",
		msg:     append(append([]byte{}, header...), 5, 'a'),
		wantErr: ErrTruncatedLabel,
	}, {
		name:    "compression pointer",
		msg:     append(append([]byte{}, header...), 0xC0, 0x0C),
		wantErr: ErrInvalidEncoding,
	}, {
		name:    "non-printable label",
		msg:     append(append([]byte{}, header...), 1, 0x07, 0),
		wantErr: ErrInvalidEncoding,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Question(tc.msg)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNegativeResponse(t *testing.T) {
	req := packQuery(t, "ads.example.com.", dns.TypeA)

	// Pretend the request carried record counts to make sure they all get
	// zeroed.
	for i := 6; i < 12; i++ {
		req[i] = 0xFF
	}

	resp, err := NegativeResponse(req)
	require.NoError(t, err)
	require.Len(t, resp, len(req))

	// Header: ID and question count are preserved, the response bit is set,
	// the response code is NXDOMAIN, the other counts are zero.
	assert.Equal(t, req[:2], resp[:2])
	assert.NotZero(t, resp[2]&0x80)
	assert.Equal(t, byte(3), resp[3]&0x0F)
	assert.Equal(t, req[3]&0xF0, resp[3]&0xF0)
	assert.Equal(t, req[4:6], resp[4:6])
	assert.Equal(t, make([]byte, 6), resp[6:12])

	// The question section is echoed back byte for byte.
	assert.Equal(t, req[12:], resp[12:])
}

func TestNegativeResponse_decodable(t *testing.T) {
	req := packQuery(t, "ads.example.com.", dns.TypeA)

	resp, err := NegativeResponse(req)
	require.NoError(t, err)

	m := new(dns.Msg)
	require.NoError(t, m.Unpack(resp))

	assert.True(t, m.Response)
	assert.Equal(t, dns.RcodeNameError, m.Rcode)
	assert.Empty(t, m.Answer)
	require.Len(t, m.Question, 1)
	assert.Equal(t, "ads.example.com.", m.Question[0].Name)
}

func TestNegativeResponse_tooShort(t *testing.T) {
	_, err := NegativeResponse([]byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrTooShort)
}
