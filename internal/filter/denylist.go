package filter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// falsePositiveRate is the target false-positive probability of the
// denylist's underlying bloom filter.  A domain that was inserted is always
// found; a lookup of an absent domain may wrongly succeed with this
// probability.
const falsePositiveRate = 1e-8

// Denylist is an approximate set of blocked domain suffixes.  It is built
// once before the server starts handling queries and must not be modified
// after that; lookups from concurrent goroutines are safe as long as nothing
// is inserted anymore.
type Denylist struct {
	set *bloom.BloomFilter
}

// NewDenylist builds a Denylist sized for the given entries.  Entries are
// expected to be normalized already, see [ReadEntries].
func NewDenylist(entries []string) (d *Denylist, err error) {
	capacity := uint(len(entries))
	if capacity == 0 {
		// The filter library cannot size a filter for zero items.
		capacity = 1
	}

	set := bloom.NewWithEstimates(capacity, falsePositiveRate)
	if set.Cap() == 0 {
		return nil, fmt.Errorf("filter: cannot size a filter for %d entries", len(entries))
	}

	for _, e := range entries {
		set.AddString(e)
	}

	return &Denylist{set: set}, nil
}

// Contains reports whether the exact domain was inserted into the denylist.
// False positives happen with [falsePositiveRate] probability, false
// negatives never happen.
func (d *Denylist) Contains(domain string) (ok bool) {
	return d.set.TestString(domain)
}

// Match reports whether domain or any of its parent domains is in the
// denylist.  Suffixes are tested from the least specific one up, so an entry
// "example.com" blocks "ads.example.com" and every other subdomain.  An
// empty domain matches nothing.
func (d *Denylist) Match(domain string) (ok bool) {
	for i := len(domain); i > 0; {
		i = strings.LastIndexByte(domain[:i], '.')
		if d.set.TestString(domain[i+1:]) {
			return true
		}
	}

	return false
}

// ReadEntries reads denylist lines from r and returns the normalized
// entries, in order.  Everything after a "#" is a comment, surrounding
// whitespace is trimmed, entries are lowercased, empty lines are discarded.
func ReadEntries(r io.Reader) (entries []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.ToLower(strings.TrimSpace(line))
		if line != "" {
			entries = append(entries, line)
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("filter: failed to read the denylist: %w", err)
	}

	return entries, nil
}
