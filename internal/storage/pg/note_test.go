package pg

import (
	"testing"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/policy"
	"github.com/stretchr/testify/assert"
)

func TestScopePredicate(t *testing.T) {
	tests := []struct {
		name      string
		scope     policy.ListScope
		wantWhere string
		wantArgs  int
	}{
		{"mine filters by author", policy.ScopeMine, "WHERE author_id = $1", 1},
		{"public excludes drafts and unlisted", policy.ScopePublic, "WHERE visibility = 'public' AND NOT is_draft", 0},
		{"all is unfiltered", policy.ScopeAll, "", 0},
		{"default is union", policy.ScopeDefault, "WHERE (author_id = $1 OR (visibility = 'public' AND NOT is_draft))", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := scopePredicate(tt.scope, domain.AccountId(1))
			assert.Equal(t, tt.wantWhere, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}
