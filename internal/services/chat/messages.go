package chat

// Server → client event names.
const (
	EventSystem = "system"
	EventChat   = "chat"
	EventJoined = "joined"
	EventPong   = "pong"
)

// FallbackNickname labels a sender that has never joined.
const FallbackNickname = "익명"

const (
	joinNoticeFmt    = "%s 님이 입장했습니다."
	leaveNoticeFmt   = "%s 님이 퇴장했습니다."
	tooLongNoticeFmt = "메시지가 %d자를 초과했습니다."
)

// ChatPayload is the body of a "chat" broadcast. Transient: it exists only
// for the duration of the fan-out.
type ChatPayload struct {
	Nickname string `json:"nickname"`
	Text     string `json:"text"`
	Ts       int64  `json:"ts"` // epoch millis
}

// JoinedPayload privately acknowledges a successful join.
type JoinedPayload struct {
	Room string `json:"room"`
}
