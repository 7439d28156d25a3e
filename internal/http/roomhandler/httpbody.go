package roomhandler

type HealthResponse struct {
	Status    string `json:"status"    example:"ok"`
	Timestamp string `json:"timestamp" example:"2025-07-27T16:05:05Z"`
	Service   string `json:"service"   example:"chat-relay"`
} // @name HealthResponse

type SocketHealthResponse struct {
	Status    string `json:"status"    example:"ok"`
	SocketIO  string `json:"socketio"  example:"ready"`
	Timestamp string `json:"timestamp" example:"2025-07-27T16:05:05Z"`
} // @name SocketHealthResponse

type RoomInfo struct {
	Room    string `json:"room"    example:"general"`
	Members int    `json:"members" example:"3"`
} // @name RoomInfo
