package room

type RoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Location string `json:"location"`
	IsActive *bool  `json:"is_active"`
}
