// internal/fax/refid/refid.go

// Package refid produces support-traceable reference identifiers of the form
// FX-YYYY-NNNNNN. Identifiers are best-effort unique within one process; the
// audit layer enforces global uniqueness through a reservation store, and the
// engine regenerates on conflict.
package refid

import (
	"fmt"
	"sync/atomic"
	"time"
)

const serialModulo = 1000000

// counter is seeded from timer entropy at init so two process starts in the
// same year do not walk the same serial sequence from zero.
var counter atomic.Uint64

func init() {
	seed := uint64(time.Now().UnixNano()) % serialModulo
	counter.Store(seed)
}

// Generate returns a new reference ID matching ^FX-\d{4}-\d{6}$. The year
// segment is the current calendar year; the serial wraps at one million.
// Safe for concurrent use, no blocking I/O.
func Generate() string {
	return generateAt(time.Now())
}

func generateAt(now time.Time) string {
	serial := counter.Add(1) % serialModulo
	return fmt.Sprintf("FX-%d-%06d", now.Year(), serial)
}
