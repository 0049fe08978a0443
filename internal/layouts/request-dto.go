package layouts

// SeatInput is one seat of a layout request. Grid coordinates and pixel
// coordinates are both optional; the edit mode decides which are required.
type SeatInput struct {
	Row         *int     `json:"row" binding:"omitempty,min=1"`
	Column      *int     `json:"column" binding:"omitempty,min=1"`
	X           *int     `json:"x" binding:"omitempty,min=0"`
	Y           *int     `json:"y" binding:"omitempty,min=0"`
	Type        SeatType `json:"type" binding:"required"`
	Section     *int     `json:"section" binding:"omitempty,min=1"`
	Label       string   `json:"label" binding:"required,max=10"`
	Price       int64    `json:"price" binding:"min=0"`
	IsActive    *bool    `json:"is_active"`
	Rotation    int      `json:"rotation" binding:"min=-360,max=360"`
	Description string   `json:"description" binding:"max=255"`
}

type SectionInput struct {
	ID    int    `json:"id" binding:"required,min=1"`
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor,max=7"`
}

type SaveLayoutRequest struct {
	Seats    []SeatInput    `json:"seats" binding:"dive"`
	Sections []SectionInput `json:"sections" binding:"omitempty,dive"`
	Stage    *StageInfo     `json:"stage"`
	Canvas   *CanvasInfo    `json:"canvas"`
	EditMode EditMode       `json:"edit_mode" binding:"required,oneof=grid free"`
}

type ApplyTemplateRequest struct {
	TemplateName string          `json:"template_name" binding:"required"`
	Config       *TemplateConfig `json:"config"`
}

// canvas returns the requested canvas or the default one
func (r *SaveLayoutRequest) canvas() CanvasInfo {
	if r.Canvas != nil {
		return *r.Canvas
	}
	return DefaultCanvas()
}

func (r *SaveLayoutRequest) stage() StageInfo {
	if r.Stage != nil {
		return *r.Stage
	}
	return DefaultStage(r.canvas().Width)
}

// toSeatLayouts converts the request into layout rows. Section name and color
// come from the matching request section, or from the default palette.
func (r *SaveLayoutRequest) toSeatLayouts() []SeatLayout {
	sections := make(map[int]SectionInput, len(r.Sections))
	for _, s := range r.Sections {
		sections[s.ID] = s
	}

	seats := make([]SeatLayout, len(r.Seats))
	for i, in := range r.Seats {
		seat := SeatLayout{
			RowNumber:    in.Row,
			ColumnNumber: in.Column,
			XPosition:    in.X,
			YPosition:    in.Y,
			SeatLabel:    in.Label,
			SeatType:     in.Type,
			IsActive:     in.IsActive == nil || *in.IsActive,
			SectionID:    in.Section,
			Price:        in.Price,
			Rotation:     in.Rotation,
			Description:  in.Description,
		}
		if in.Section != nil {
			seat.SectionName = SectionName(*in.Section)
			seat.SectionColor = SectionColor(*in.Section)
			if s, ok := sections[*in.Section]; ok {
				seat.SectionName = s.Name
				if s.Color != "" {
					seat.SectionColor = s.Color
				}
			}
		}
		seats[i] = seat
	}
	return seats
}
