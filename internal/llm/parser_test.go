package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "retail", want: "retail"},
		{in: "  Retail.\n", want: "Retail"},
		{in: "Output: banking", want: "banking"},
		{in: "\"computer software\"", want: "computer software"},
		{in: "```\nmilitary\n```", want: "military"},
		{in: "**accounting**\nbecause it audits", want: "accounting"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanResponse(tt.in))
		})
	}
}

func TestMatchLabel(t *testing.T) {
	allowed := []string{"banking", "computer software", "information technology and services", "retail"}

	tests := []struct {
		name   string
		reply  string
		want   string
		wantOK bool
	}{
		{name: "exact", reply: "retail", want: "retail", wantOK: true},
		{name: "case-insensitive", reply: "Computer Software", want: "computer software", wantOK: true},
		{name: "label inside reply", reply: "The industry is banking", want: "banking", wantOK: true},
		{name: "reply inside label", reply: "information technology", want: "information technology and services", wantOK: true},
		{name: "no match", reply: "aquaculture", wantOK: false},
		{name: "empty", reply: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchLabel(tt.reply, allowed)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
