package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestClassifyDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.uq_users_username'"},
			want: ErrDuplicateUsername,
		},
		{
			name: "email constraint",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.com' for key 'users.uq_users_email'"},
			want: ErrDuplicateEmail,
		},
		{
			name: "wrapped mysql error",
			err:  fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.uq_users_username'"}),
			want: ErrDuplicateUsername,
		},
		{
			name: "non-duplicate mysql error",
			err:  &mysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"},
			want: nil,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyDuplicate(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("classifyDuplicate() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyDuplicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyDuplicateUnknownConstraint(t *testing.T) {
	err := classifyDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'users.PRIMARY'"})
	if err == nil {
		t.Fatal("classifyDuplicate() should still report an unknown duplicate constraint")
	}
	if errors.Is(err, ErrDuplicateUsername) || errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("unknown constraint misattributed: %v", err)
	}
}
