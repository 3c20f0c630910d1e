package dto

type LevelRequest struct {
	Name         string  `json:"levelname" validate:"required,min=3"`
	Description  string  `json:"leveldescription" validate:"required"`
	PricePerPage float64 `json:"priceperpage" validate:"gte=0"`
}

type PaperRequest struct {
	Name        string `json:"papername" validate:"required,min=3"`
	Description string `json:"paperdescription" validate:"required"`
	LevelIDs    []uint `json:"level_ids"`
}

type PaperTypeRequest struct {
	Name         string  `json:"papertypename" validate:"required,min=3"`
	Description  string  `json:"papertypedescription" validate:"required"`
	PricePerPage float64 `json:"priceperpage" validate:"gte=0"`
	PaperID      *uint   `json:"paper_id"`
}
