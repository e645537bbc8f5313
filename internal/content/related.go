// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Relatable is a Record that can judge whether another record of the
// same kind is related to it.
type Relatable[T any] interface {
	Record
	RelatedTo(other T) bool
}

// Related returns up to maxCount published records related to anchor,
// in input order. The anchor itself is never included.
//
// There is no ranking: relatedness is a yes/no judgement per record.
func Related[T Relatable[T]](records []T, anchor T, maxCount int) []T {
	out := make([]T, 0)
	if maxCount <= 0 {
		return out
	}

	anchorID := anchor.RecordID()
	for _, r := range records {
		if len(out) == maxCount {
			break
		}
		if !r.IsPublished() || r.RecordID() == anchorID {
			continue
		}
		if anchor.RelatedTo(r) {
			out = append(out, r)
		}
	}
	return out
}
