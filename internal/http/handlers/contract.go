package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pactfit/pactfit-backend/internal/domain/contract"
	"github.com/pactfit/pactfit-backend/internal/http/response"
	"github.com/pactfit/pactfit-backend/internal/services"
)

type ContractHandler struct {
	contractService services.ContractService
}

func NewContractHandler(contractService services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

func contractID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contract_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (ch *ContractHandler) Create(c *gin.Context) {
	var req struct {
		Title            string            `json:"title"`
		Description      string            `json:"description"`
		ParticipantEmail string            `json:"participant_email"`
		Schedule         contract.Schedule `json:"schedule"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ch.contractService.CreateContract(c.Request.Context(), services.CreateContractInput{
		Title:            req.Title,
		Description:      req.Description,
		ParticipantEmail: req.ParticipantEmail,
		Schedule:         req.Schedule,
	})
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "create_contract_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contract": created})
}

func (ch *ContractHandler) List(c *gin.Context) {
	contracts, err := ch.contractService.ListContracts(c.Request.Context())
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "list_contracts_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contracts": contracts})
}

func (ch *ContractHandler) Get(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	found, err := ch.contractService.GetContract(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "get_contract_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contract": found})
}

func (ch *ContractHandler) Accept(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	accepted, err := ch.contractService.AcceptContract(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "accept_contract_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contract": accepted})
}

func (ch *ContractHandler) Decline(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	if err := ch.contractService.DeclineContract(c.Request.Context(), id); err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "decline_contract_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ContractHandler) RequestDelete(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	updated, err := ch.contractService.RequestDelete(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "request_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contract": updated})
}

func (ch *ContractHandler) ConfirmDelete(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	if err := ch.contractService.ConfirmDelete(c.Request.Context(), id); err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "confirm_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ContractHandler) CancelDelete(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	updated, err := ch.contractService.CancelDelete(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "cancel_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"contract": updated})
}
