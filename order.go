package main

// reorder relocates id within ids, or inserts it if absent. The id is first
// removed, then inserted at index measured against the sequence after removal;
// index is clamped to [0, len]. All other elements keep their relative order.
// This matches the drag-and-drop model: the dragged item disappears, then
// reappears at the drop point.
func reorder(ids []string, id string, index int) []string {
	out := make([]string, 0, len(ids)+1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(out) {
		index = len(out)
	}
	out = append(out, "")
	copy(out[index+1:], out[index:])
	out[index] = id
	return out
}
