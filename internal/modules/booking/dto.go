package booking

type CreateRegistrationRequest struct {
	PetID   int64  `json:"pet_id" binding:"required"`
	ItemID  int64  `json:"item_id" binding:"required"`
	Kind    string `json:"kind" binding:"required" validate:"oneof=appointment service boarding"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time"`
	EndDate string `json:"end_date"`
	Notes   string `json:"notes"`
}

type SlotAvailability struct {
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available bool   `json:"available"`
}
