package policy

// ToggleLike returns a new like set with userID removed if it was present and
// added otherwise. Duplicate entries of userID in the input are all removed.
// The input slice is never modified.
func ToggleLike(likes []string, userID string) (updated []string, liked bool) {
	updated = make([]string, 0, len(likes)+1)
	found := false
	for _, id := range likes {
		if id == userID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, userID)
	}
	return updated, !found
}

// HasLiked reports whether userID is in likes.
func HasLiked(likes []string, userID string) bool {
	for _, id := range likes {
		if id == userID {
			return true
		}
	}
	return false
}
