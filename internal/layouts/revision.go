package layouts

import "github.com/google/uuid"

// Revision reports what a wholesale layout replacement changed
type Revision struct {
	Number        int `json:"revision"`
	SeatsCreated  int `json:"seats_created"`
	SeatsRelinked int `json:"seats_relinked"`
	SeatsDetached int `json:"seats_detached"`
}

// layoutRef is the identity of a layout row that is about to be replaced
type layoutRef struct {
	ID        uuid.UUID
	SeatLabel string
}

// planRelink maps old layout row ids to the new row carrying the same label.
// Old rows whose label disappeared are returned as orphans; performance seats
// pointing at them get detached.
func planRelink(old []layoutRef, fresh []SeatLayout) (map[uuid.UUID]uuid.UUID, []uuid.UUID) {
	byLabel := make(map[string]uuid.UUID, len(fresh))
	for i := range fresh {
		byLabel[fresh[i].SeatLabel] = fresh[i].ID
	}

	relink := make(map[uuid.UUID]uuid.UUID, len(old))
	var orphans []uuid.UUID
	for _, ref := range old {
		if id, ok := byLabel[ref.SeatLabel]; ok {
			relink[ref.ID] = id
			continue
		}
		orphans = append(orphans, ref.ID)
	}
	return relink, orphans
}
