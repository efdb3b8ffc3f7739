package review

import "fmt"

// DragItem is a drag-and-drop payload. Exactly two payloads exist: a photo
// dragged from the unassigned pool, and a person's slot dragged with its
// current photo.
type DragItem interface {
	dragItem()
}

// DraggedPhoto is a photo picked up from the unassigned pool.
type DraggedPhoto struct {
	MediaID int `json:"mediaId"`
}

// DraggedPerson is a roster slot picked up together with its assigned photo.
type DraggedPerson struct {
	PersonID int `json:"personId"`
}

func (DraggedPhoto) dragItem()  {}
func (DraggedPerson) dragItem() {}

// ParseDragItem decodes a wire payload into a DragItem.
func ParseDragItem(kind string, id int) (DragItem, error) {
	switch kind {
	case "photo":
		return DraggedPhoto{MediaID: id}, nil
	case "person":
		return DraggedPerson{PersonID: id}, nil
	default:
		return nil, fmt.Errorf("unknown drag item kind %q", kind)
	}
}

// DropOnPerson applies a drop onto a roster slot. A dropped photo is assigned
// to the target; a dropped person swaps photos with the target. Dropping a
// person onto themselves is a no-op.
func (s *Session) DropOnPerson(item DragItem, targetPersonID int) {
	switch it := item.(type) {
	case DraggedPhoto:
		s.Assign(it.MediaID, targetPersonID)
	case DraggedPerson:
		if it.PersonID == targetPersonID {
			return
		}
		s.Swap(it.PersonID, targetPersonID)
	}
}

// DropOnUnassigned applies a drop onto the unassigned pool. A dropped person
// slot releases its photo back to the pool; a dropped pool photo stays where
// it is.
func (s *Session) DropOnUnassigned(item DragItem) {
	if it, ok := item.(DraggedPerson); ok {
		s.Remove(it.PersonID)
	}
}
