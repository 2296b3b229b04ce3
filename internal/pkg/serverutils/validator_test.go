package serverutils

import (
	"testing"

	"volunteer-matching-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequestPassesValidPayload(t *testing.T) {
	req := dto.AdvisorChatRequest{
		Messages: []dto.AdvisorMessageDTO{
			{Role: "user", Content: "清掃ボランティアを探しています"},
		},
	}

	err := ValidateRequest(req)
	assert.NoError(t, err)
}

func TestValidateRequestRejectsEmptyHistory(t *testing.T) {
	req := dto.AdvisorChatRequest{}

	err := ValidateRequest(req)
	assert.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Fields)
}

func TestValidateRequestRejectsUnknownRole(t *testing.T) {
	req := dto.AdvisorChatRequest{
		Messages: []dto.AdvisorMessageDTO{
			{Role: "moderator", Content: "hi"},
		},
	}

	err := ValidateRequest(req)
	assert.Error(t, err)
}

func TestValidateRequestRejectsBlankEventName(t *testing.T) {
	req := dto.CreateEventRequest{
		ShortDescription: "海岸のゴミ拾い",
	}

	err := ValidateRequest(req)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "Name")
}
