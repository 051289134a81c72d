package appwrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryClauses(t *testing.T) {
	tests := []struct {
		name     string
		clause   string
		expected string
	}{
		{"equal", queryEqual("user_id", "u1"), `{"attribute":"user_id","method":"equal","values":["u1"]}`},
		{"order asc", queryOrderAsc("position"), `{"attribute":"position","method":"orderAsc"}`},
		{"order desc", queryOrderDesc("created_at"), `{"attribute":"created_at","method":"orderDesc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.expected, tt.clause)
		})
	}
}
