package dkg

// findMissing returns the ids from want that have no matching entry in got,
// the edge case from spec.md §4.5: "Missing round-1 broadcast or missing
// round-2 ciphertext from a peer before a session-level timeout is treated
// equivalently to complaint-decrypt."
func findMissing[T any](want []uint64, got []T, senderOf func(T) uint64) []uint64 {
	present := make(map[uint64]bool, len(got))
	for _, item := range got {
		present[senderOf(item)] = true
	}

	missing := make([]uint64, 0)
	for _, id := range want {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// deduplicateBySender keeps only the first entry seen for each sender,
// returning the ids for which a later duplicate was dropped. Spec.md §4.5:
// "Duplicate broadcasts from the same sender MUST be rejected (first wins,
// subsequent are complaints)."
func deduplicateBySender[T any](items []T, senderOf func(T) uint64) (kept []T, duplicateSenders []uint64) {
	seen := make(map[uint64]bool)
	kept = make([]T, 0, len(items))
	for _, item := range items {
		sender := senderOf(item)
		if seen[sender] {
			duplicateSenders = append(duplicateSenders, sender)
			continue
		}
		seen[sender] = true
		kept = append(kept, item)
	}
	return kept, duplicateSenders
}
