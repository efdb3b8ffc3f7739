package review

// AssignPhotoToPerson returns a new assignment list where mediaID belongs to
// personID. Any existing pair using either id is dropped first, which is the
// single place the partial-bijection invariant is enforced after manual
// edits. Reassigning an already-assigned media item is last-write-wins.
// Applying the identical pair twice yields the same member set.
func AssignPhotoToPerson(assignments []PhotoAssignment, mediaID, personID int) []PhotoAssignment {
	next := make([]PhotoAssignment, 0, len(assignments)+1)
	for _, a := range assignments {
		if a.PersonID != personID && a.MediaID != mediaID {
			next = append(next, a)
		}
	}
	return append(next, PhotoAssignment{PersonID: personID, MediaID: mediaID})
}

// SwapAssignments moves the source person's photo to the target person. If
// the target already had a photo it goes back to the source (a true swap);
// otherwise this degenerates to a move. A source without a photo makes the
// operation a no-op.
func SwapAssignments(assignments []PhotoAssignment, source, target PersonWithPhoto) []PhotoAssignment {
	if source.AssignedPhoto == nil {
		return assignments
	}

	sourceMediaID := source.AssignedPhoto.MediaID

	next := make([]PhotoAssignment, 0, len(assignments)+1)
	for _, a := range assignments {
		if a.PersonID != source.ID && a.PersonID != target.ID {
			next = append(next, a)
		}
	}

	next = append(next, PhotoAssignment{PersonID: target.ID, MediaID: sourceMediaID})
	if target.AssignedPhoto != nil {
		next = append(next, PhotoAssignment{PersonID: source.ID, MediaID: target.AssignedPhoto.MediaID})
	}
	return next
}

// RemoveAssignment drops the person's assignment if present; removing a
// person without one is a no-op. The freed photo re-enters the unassigned
// pool implicitly by no longer being referenced.
func RemoveAssignment(assignments []PhotoAssignment, personID int) []PhotoAssignment {
	next := make([]PhotoAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.PersonID != personID {
			next = append(next, a)
		}
	}
	return next
}
