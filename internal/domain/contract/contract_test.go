package contract

import (
	"testing"

	"github.com/google/uuid"
)

func TestVisibleTo(t *testing.T) {
	creator := uuid.New()
	stranger := uuid.New()
	c := &Contract{CreatedBy: creator, ParticipantEmail: "buddy@example.com", Status: StatusPending}

	if !c.VisibleTo(creator, "creator@example.com") {
		t.Fatalf("creator should see their contract")
	}
	if !c.VisibleTo(stranger, "Buddy@Example.com") {
		t.Fatalf("invite email match is case-insensitive")
	}
	if c.VisibleTo(stranger, "other@example.com") {
		t.Fatalf("non-party should not see the contract")
	}

	for _, st := range []Status{StatusDeleted, StatusDeclined} {
		c.Status = st
		if c.VisibleTo(creator, "creator@example.com") {
			t.Fatalf("status %s should hide the contract from everyone", st)
		}
	}
}

func TestAcceptDeclineGuards(t *testing.T) {
	c := &Contract{CreatedBy: uuid.New(), ParticipantEmail: "buddy@example.com", Status: StatusPending}

	if !c.CanAccept("buddy@example.com") {
		t.Fatalf("invitee should be able to accept a pending contract")
	}
	if c.CanAccept("other@example.com") {
		t.Fatalf("only the invitee may accept")
	}
	if !c.CanDecline("buddy@example.com") {
		t.Fatalf("invitee should be able to decline a pending contract")
	}

	c.Status = StatusAccepted
	if c.CanAccept("buddy@example.com") {
		t.Fatalf("accept must not apply twice")
	}
	if c.CanDecline("buddy@example.com") {
		t.Fatalf("decline only applies to pending contracts")
	}
}

func TestDeleteHandshakeGuards(t *testing.T) {
	creator := uuid.New()
	participant := uuid.New()
	stranger := uuid.New()
	c := &Contract{
		CreatedBy:     creator,
		ParticipantID: &participant,
		Status:        StatusAccepted,
	}

	if !c.CanRequestDelete(creator) || !c.CanRequestDelete(participant) {
		t.Fatalf("either party may request deletion")
	}
	if c.CanRequestDelete(stranger) {
		t.Fatalf("non-party cannot request deletion")
	}
	if c.CanConfirmDelete(participant) || c.CanCancelDelete(participant) {
		t.Fatalf("no confirm or cancel before a request exists")
	}

	c.DeleteRequestedBy = &creator
	if c.CanRequestDelete(participant) {
		t.Fatalf("second request while one is pending must be rejected")
	}
	if c.CanConfirmDelete(creator) {
		t.Fatalf("requester cannot confirm their own request")
	}
	if !c.CanConfirmDelete(participant) {
		t.Fatalf("counterpart should be able to confirm")
	}
	if !c.CanCancelDelete(creator) || !c.CanCancelDelete(participant) {
		t.Fatalf("either party may cancel a pending request")
	}
	if c.CanConfirmDelete(stranger) || c.CanCancelDelete(stranger) {
		t.Fatalf("non-party cannot act on the handshake")
	}
}

func TestOtherParty(t *testing.T) {
	creator := uuid.New()
	participant := uuid.New()

	pending := &Contract{CreatedBy: creator, Status: StatusPending}
	if got := pending.OtherParty(creator); got != nil {
		t.Fatalf("pending contract has no counterpart for the creator, got %v", got)
	}

	accepted := &Contract{CreatedBy: creator, ParticipantID: &participant, Status: StatusAccepted}
	if got := accepted.OtherParty(creator); got == nil || *got != participant {
		t.Fatalf("OtherParty(creator) = %v, want participant", got)
	}
	if got := accepted.OtherParty(participant); got == nil || *got != creator {
		t.Fatalf("OtherParty(participant) = %v, want creator", got)
	}
}
