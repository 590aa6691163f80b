package booking

type BookingRequest struct {
	RoomID        int64  `json:"room_id" binding:"required"`
	BookingDate   string `json:"booking_date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	Purpose       string `json:"purpose"`
	LinkedEventID *int64 `json:"linked_event_id"`
}

type BookingResponse struct {
	ID            int64  `json:"id"`
	RoomID        int64  `json:"room_id"`
	RoomName      string `json:"room_name"`
	EmployeeID    int64  `json:"employee_id"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Purpose       string `json:"purpose,omitempty"`
	LinkedEventID *int64 `json:"linked_event_id,omitempty"`
}
