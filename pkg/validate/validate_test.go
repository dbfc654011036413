package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

type splitRequest struct {
	SplitMethod  string   `json:"splitMethod" validate:"omitempty,oneof=EQUAL EXACT"`
	Participants []string `json:"participants" validate:"omitempty,dive,required"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:  "Valid request",
			input: signupRequest{Username: "alice", Email: "alice@example.com"},
		},
		{
			name:     "Missing field uses json name",
			input:    signupRequest{Email: "alice@example.com"},
			expected: "username is required",
		},
		{
			name:     "Bad email",
			input:    signupRequest{Username: "alice", Email: "alice"},
			expected: "email must be a valid email",
		},
		{
			name:     "Too short",
			input:    signupRequest{Username: "al", Email: "alice@example.com"},
			expected: "username must be at least 3",
		},
		{
			name:     "Unknown method",
			input:    splitRequest{SplitMethod: "RANDOM"},
			expected: "splitMethod must be one of [EQUAL EXACT]",
		},
		{
			name:     "Blank element",
			input:    splitRequest{Participants: []string{"u1", ""}},
			expected: "participants[1] is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.expected == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expected)
			}
		})
	}
}
