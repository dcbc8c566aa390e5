package schemas

import "encoding/json"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

// MaxSwapMessageLength bounds the free-text message of a swap request.
const MaxSwapMessageLength = 500

// SwapRequest is the canonical shape of a swap request. Both parties are carried
// as full canonical users.
type SwapRequest struct {
	ID           ID         `json:"id"`
	FromUser     User       `json:"fromUser"`
	ToUser       User       `json:"toUser"`
	OfferedSkill string     `json:"offeredSkill"`
	WantedSkill  string     `json:"wantedSkill"`
	Message      string     `json:"message"`
	Status       SwapStatus `json:"status"`
	CreatedAt    string     `json:"createdAt"`
	Rated        bool       `json:"rated"`
	Rating       *int       `json:"rating,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
}

// LegacySwapFields is the camelCase dialect of a swap request.
type LegacySwapFields struct {
	FromUser     *UserPayload `json:"fromUser"`
	ToUser       *UserPayload `json:"toUser"`
	OfferedSkill *SkillRef    `json:"offeredSkill"`
	WantedSkill  *SkillRef    `json:"wantedSkill"`
	CreatedAt    string       `json:"createdAt"`
}

// BackendSwapFields is the snake_case dialect served by the backend API.
type BackendSwapFields struct {
	FromUser     *UserPayload `json:"from_user"`
	ToUser       *UserPayload `json:"to_user"`
	Requester    *UserPayload `json:"requester"`
	Target       *UserPayload `json:"target"`
	OfferedSkill *SkillRef    `json:"offered_skill"`
	WantedSkill  *SkillRef    `json:"wanted_skill"`
	CreatedAt    string       `json:"created_at"`
}

// CommonSwapFields are spelled the same in both dialects.
type CommonSwapFields struct {
	ID       ID     `json:"id"`
	Message  string `json:"message"`
	Status   string `json:"status"`
	Rated    *bool  `json:"rated"`
	Rating   *int   `json:"rating"`
	Feedback string `json:"feedback"`
}

// SwapPayload is one swap request object from the wire, read through both
// dialect views.
type SwapPayload struct {
	Common  CommonSwapFields
	Legacy  LegacySwapFields
	Backend BackendSwapFields
}

// UnmarshalJSON decodes the same object into every dialect view.
func (p *SwapPayload) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.Common); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &p.Legacy); err != nil {
		return err
	}
	return json.Unmarshal(data, &p.Backend)
}
