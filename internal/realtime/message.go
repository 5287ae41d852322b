package realtime

type SSEEvent string

const (
	SSEEventContractCreated         SSEEvent = "ContractCreated"
	SSEEventContractAccepted        SSEEvent = "ContractAccepted"
	SSEEventContractDeclined        SSEEvent = "ContractDeclined"
	SSEEventContractDeleteRequested SSEEvent = "ContractDeleteRequested"
	SSEEventContractDeleteCanceled  SSEEvent = "ContractDeleteCanceled"
	SSEEventContractDeleted         SSEEvent = "ContractDeleted"
	SSEEventWorkoutToggled          SSEEvent = "WorkoutToggled"
	SSEEventUserNameChanged         SSEEvent = "UserNameChanged"
	SSEEventUserAvatarChanged       SSEEvent = "UserAvatarChanged"
)

// SSEMessage carries a change notification. Data identifies what changed;
// clients refetch rather than trust the payload as a full snapshot.
type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// UserChannel is the per-user subscription key.
func UserChannel(userID string) string { return "user:" + userID }

// ContractChannel is the per-contract subscription key.
func ContractChannel(contractID string) string { return "contract:" + contractID }
