// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Code that records timestamps accepts a Clock instead of calling
// time.Now directly. In production, Real() provides the standard
// library behavior. In tests, Fake() provides a clock that moves only
// when Advance or Set is called, so recorded times are exact:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store, err := bocstore.Open(dir, bocstore.Options{Clock: c})
//	// ... Put ...
//	c.Advance(5 * time.Second)
package clock
