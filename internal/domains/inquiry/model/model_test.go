package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"himalayandays/internal/domains/inquiry/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{
			name: "pending to contacted",
			from: model.StatusPending,
			to:   model.StatusContacted,
			want: true,
		},
		{
			name: "pending to spam",
			from: model.StatusPending,
			to:   model.StatusSpam,
			want: true,
		},
		{
			name: "pending to lost",
			from: model.StatusPending,
			to:   model.StatusLost,
			want: true,
		},
		{
			name: "pending cannot skip to won",
			from: model.StatusPending,
			to:   model.StatusWon,
			want: false,
		},
		{
			name: "contacted to won",
			from: model.StatusContacted,
			to:   model.StatusWon,
			want: true,
		},
		{
			name: "proposal sent to negotiation",
			from: model.StatusProposalSent,
			to:   model.StatusNegotiation,
			want: true,
		},
		{
			name: "negotiation cannot go back to contacted",
			from: model.StatusNegotiation,
			to:   model.StatusContacted,
			want: false,
		},
		{
			name: "won is terminal",
			from: model.StatusWon,
			to:   model.StatusLost,
			want: false,
		},
		{
			name: "lost is terminal",
			from: model.StatusLost,
			to:   model.StatusContacted,
			want: false,
		},
		{
			name: "spam back to pending",
			from: model.StatusSpam,
			to:   model.StatusPending,
			want: true,
		},
		{
			name: "spam cannot jump to won",
			from: model.StatusSpam,
			to:   model.StatusWon,
			want: false,
		},
		{
			name: "same status is a no-op move",
			from: model.StatusContacted,
			to:   model.StatusContacted,
			want: true,
		},
		{
			name: "unknown source status",
			from: "ARCHIVED",
			to:   model.StatusPending,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		model.StatusPending,
		model.StatusContacted,
		model.StatusProposalSent,
		model.StatusNegotiation,
		model.StatusWon,
		model.StatusLost,
		model.StatusSpam,
	} {
		assert.True(t, model.ValidStatus(status), status)
	}

	assert.False(t, model.ValidStatus("ARCHIVED"))
	assert.False(t, model.ValidStatus("pending"))
}

func TestInquiry_Trashed(t *testing.T) {
	live := model.Inquiry{ID: "inq-1"}
	assert.False(t, live.Trashed())

	deletedAt := time.Now()
	trashed := model.Inquiry{ID: "inq-2", DeletedAt: &deletedAt}
	assert.True(t, trashed.Trashed())
}
